// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liberatoaguilartamu/barpoll/models"
	"github.com/liberatoaguilartamu/barpoll/testutil"
)

func TestGetToday(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	admin := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	outsider := testutil.CreateUser(t, db, cityID, "Olga", "5550000002", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Friday Crew", admin)
	cityPoll := testutil.CreatePoll(t, db, testutil.Today, cityID, "")
	groupPoll := testutil.CreatePoll(t, db, testutil.Today, cityID, groupID)
	testutil.CreatePoll(t, db, testutil.Yesterday, testutil.CreateCity(t, db, "Dallas"), "")

	handler := NewPollHandler(db, testutil.Clock())

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPoll   string
		wantCode   string
	}{
		{"city poll", "?city_id=" + cityID + "&poll_type=city", http.StatusOK, cityPoll, ""},
		{"group poll for member", "?city_id=" + cityID + "&poll_type=group&group_id=" + groupID + "&user_id=" + admin, http.StatusOK, groupPoll, ""},
		{"group poll without viewer", "?city_id=" + cityID + "&poll_type=group&group_id=" + groupID, http.StatusOK, groupPoll, ""},
		{"group poll for outsider", "?city_id=" + cityID + "&poll_type=group&group_id=" + groupID + "&user_id=" + outsider, http.StatusForbidden, "", "not_a_member"},
		{"missing city", "?poll_type=city", http.StatusBadRequest, "", "city_required"},
		{"missing poll type", "?city_id=" + cityID, http.StatusBadRequest, "", "invalid_poll_type"},
		{"unknown poll type", "?city_id=" + cityID + "&poll_type=weekly", http.StatusBadRequest, "", "invalid_poll_type"},
		{"group poll without group", "?city_id=" + cityID + "&poll_type=group", http.StatusBadRequest, "", "group_required"},
		{"no poll today", "?city_id=nope&poll_type=city", http.StatusNotFound, "", "poll_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/polls/today"+tt.query, nil, nil)
			w := httptest.NewRecorder()
			handler.GetToday(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp models.TodayPollResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Poll.ID != tt.wantPoll {
					t.Errorf("Expected poll %s, got %s", tt.wantPoll, resp.Poll.ID)
				}
				if resp.Poll.Date != testutil.Today {
					t.Errorf("Expected poll date %s, got %s", testutil.Today, resp.Poll.Date)
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Code != tt.wantCode {
				t.Errorf("Expected code %q, got %q", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestGetResults(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	barA := testutil.CreateBar(t, db, cityID, "Alamo Tap")
	barB := testutil.CreateBar(t, db, cityID, "Barton Bar")
	amy := testutil.CreateUser(t, db, cityID, "Amy", "5550000001", false)
	ben := testutil.CreateUser(t, db, cityID, "Ben", "5550000002", true)
	cal := testutil.CreateUser(t, db, cityID, "Cal", "5550000003", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Crew", amy)
	cityPoll := testutil.CreatePoll(t, db, testutil.Today, cityID, "")
	groupPoll := testutil.CreatePoll(t, db, testutil.Today, cityID, groupID)

	testutil.CreateVote(t, db, amy, groupPoll, barA, testutil.Today)
	testutil.CreateVote(t, db, ben, cityPoll, barA, testutil.Today)
	testutil.CreateVote(t, db, cal, cityPoll, barB, testutil.Today)

	handler := NewResultsHandler(db, testutil.Clock())

	req := testutil.MakeRequest("GET", "/polls?city_id="+cityID+"&poll_type=city", nil, nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.PollResults
	testutil.AssertJSON(t, w, &results)

	if results.PollID != cityPoll {
		t.Errorf("Expected poll %s, got %s", cityPoll, results.PollID)
	}
	if results.TotalVotes != 3 {
		t.Fatalf("Expected 3 total votes, got %d", results.TotalVotes)
	}
	if len(results.Bars) != 2 {
		t.Fatalf("Expected 2 bars, got %d", len(results.Bars))
	}

	top := results.Bars[0]
	if top.ID != barA || top.Votes != 2 || top.VotePercentage != 67 {
		t.Errorf("Unexpected top bar: %+v", top)
	}
	if len(top.Voters) != 1 || top.Voters[0].Name != "Amy" {
		t.Errorf("Expected only Amy listed for %s, got %+v", top.Name, top.Voters)
	}
	if results.Bars[1].VotePercentage != 33 {
		t.Errorf("Expected 33%% for second bar, got %d", results.Bars[1].VotePercentage)
	}
}

func TestGetResults_GroupScope(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	testutil.CreateBar(t, db, cityID, "Alamo Tap")
	admin := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Crew", admin)
	groupPoll := testutil.CreatePoll(t, db, testutil.Today, cityID, groupID)

	handler := NewResultsHandler(db, testutil.Clock())

	req := testutil.MakeRequest("GET", "/polls?city_id="+cityID+"&poll_type=group&group_id="+groupID, nil, nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.PollResults
	testutil.AssertJSON(t, w, &results)
	if results.PollID != groupPoll {
		t.Errorf("Expected group poll %s, got %s", groupPoll, results.PollID)
	}
	if results.TotalVotes != 0 || results.Bars[0].VotePercentage != 0 {
		t.Errorf("Expected an empty tally, got %+v", results)
	}

	// No city poll has been opened today
	req = testutil.MakeRequest("GET", "/polls?city_id="+cityID+"&poll_type=city", nil, nil)
	w = httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
