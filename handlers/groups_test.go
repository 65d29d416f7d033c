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

func TestCreateGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	adminID := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	testutil.CreateGroup(t, db, cityID, "Taken", adminID)

	handler := NewGroupHandler(db, testutil.Clock())

	tests := []struct {
		name       string
		body       models.CreateGroupRequest
		wantStatus int
		wantCode   string
	}{
		{"valid", models.CreateGroupRequest{Name: "  Friday Crew ", CityID: cityID, AdminID: adminID}, http.StatusCreated, ""},
		{"missing name", models.CreateGroupRequest{CityID: cityID, AdminID: adminID}, http.StatusBadRequest, "invalid_request"},
		{"blank name", models.CreateGroupRequest{Name: "   ", CityID: cityID, AdminID: adminID}, http.StatusBadRequest, "invalid_group_name"},
		{"duplicate name", models.CreateGroupRequest{Name: "Taken", CityID: cityID, AdminID: adminID}, http.StatusConflict, "duplicate_group_name"},
		{"unknown city", models.CreateGroupRequest{Name: "Lost", CityID: "nowhere", AdminID: adminID}, http.StatusNotFound, "city_not_found"},
		{"unknown admin", models.CreateGroupRequest{Name: "Ghosts", CityID: cityID, AdminID: "ghost"}, http.StatusNotFound, "user_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/groups", tt.body, nil)
			w := httptest.NewRecorder()
			handler.CreateGroup(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusCreated {
				var resp models.CreateGroupResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Group.Name != "Friday Crew" {
					t.Errorf("Expected trimmed name, got %q", resp.Group.Name)
				}
				if !resp.Group.IsAdmin {
					t.Error("Expected creator to be admin")
				}
				n := testutil.Count(t, db, `SELECT COUNT(*) FROM poll WHERE group_id = $1 AND poll_date = $2`, resp.Group.ID, testutil.Today)
				if n != 1 {
					t.Errorf("Expected today's group poll, found %d", n)
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

func TestDeleteGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	adminID := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	memberID := testutil.CreateUser(t, db, cityID, "Mo", "5550000002", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Crew", adminID)
	testutil.AddMember(t, db, groupID, memberID, models.StatusAccepted)
	testutil.CreatePoll(t, db, testutil.Today, cityID, groupID)

	handler := NewGroupHandler(db, testutil.Clock())

	del := func(userID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/groups/"+groupID, models.DeleteGroupRequest{UserID: userID}, nil)
		req.SetPathValue("id", groupID)
		w := httptest.NewRecorder()
		handler.DeleteGroup(w, req)
		return w
	}

	w := del(memberID)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = del(adminID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.MessageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != `Group "Crew" has been deleted` {
		t.Errorf("Unexpected message: %s", resp.Message)
	}

	if n := testutil.Count(t, db, `SELECT COUNT(*) FROM poll WHERE group_id = $1`, groupID); n != 0 {
		t.Errorf("Expected group polls removed, found %d", n)
	}

	w = del(adminID)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)

	austin := testutil.CreateCity(t, db, "Austin")
	dallas := testutil.CreateCity(t, db, "Dallas")
	userID := testutil.CreateUser(t, db, austin, "Amy", "5550000001", false)
	otherAdmin := testutil.CreateUser(t, db, austin, "Zed", "5550000002", false)
	testutil.CreateGroup(t, db, austin, "Bravo", userID)
	testutil.CreateGroup(t, db, dallas, "Alpha", userID)
	invited := testutil.CreateGroup(t, db, austin, "Charlie", otherAdmin)
	testutil.AddMember(t, db, invited, userID, models.StatusPending)

	handler := NewGroupHandler(db, testutil.Clock())

	req := testutil.MakeRequest("GET", "/groups?user_id="+userID, nil, nil)
	w := httptest.NewRecorder()
	handler.ListGroups(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GroupsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Groups) != 2 || resp.Groups[0].Name != "Alpha" || resp.Groups[1].Name != "Bravo" {
		t.Errorf("Expected groups [Alpha Bravo], got %+v", resp.Groups)
	}
	if len(resp.Invitations) != 1 || resp.Invitations[0].FromName != "Zed" {
		t.Errorf("Expected one invitation from Zed, got %+v", resp.Invitations)
	}

	req = testutil.MakeRequest("GET", "/groups?user_id="+userID+"&city_id="+dallas, nil, nil)
	w = httptest.NewRecorder()
	handler.ListGroups(w, req)

	resp = models.GroupsResponse{}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Groups) != 1 || resp.Groups[0].Name != "Alpha" {
		t.Errorf("Expected only Alpha in Dallas, got %+v", resp.Groups)
	}

	req = testutil.MakeRequest("GET", "/groups", nil, nil)
	w = httptest.NewRecorder()
	handler.ListGroups(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	adminID := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	memberID := testutil.CreateUser(t, db, cityID, "Mo", "5550000002", false)
	pendingID := testutil.CreateUser(t, db, cityID, "Pat", "5550000003", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Crew", adminID)
	testutil.AddMember(t, db, groupID, memberID, models.StatusAccepted)
	testutil.AddMember(t, db, groupID, pendingID, models.StatusPending)

	handler := NewGroupHandler(db, testutil.Clock())

	get := func(id, viewer string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/groups/"+id+"?user_id="+viewer, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.GetGroup(w, req)
		return w
	}

	w := get(groupID, memberID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GroupDetailResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Group.AdminID != adminID || resp.Group.IsAdmin {
		t.Errorf("Unexpected admin fields: %+v", resp.Group)
	}
	if len(resp.Group.Members) != 2 {
		t.Fatalf("Expected 2 accepted members, got %d", len(resp.Group.Members))
	}
	if resp.Group.Members[0].Name != "Ada" || !resp.Group.Members[0].IsAdmin {
		t.Errorf("Expected Ada first and flagged admin, got %+v", resp.Group.Members[0])
	}

	testutil.AssertStatus(t, get(groupID, pendingID), http.StatusForbidden)
	testutil.AssertStatus(t, get("missing", memberID), http.StatusNotFound)
	testutil.AssertStatus(t, get(groupID, ""), http.StatusBadRequest)
}

func TestInviteRespondLeave(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	adminID := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	guestID := testutil.CreateUser(t, db, cityID, "Gus", "5550000002", false)
	outsider := testutil.CreateUser(t, db, cityID, "Olga", "5550000003", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Crew", adminID)

	handler := NewGroupHandler(db, testutil.Clock())

	invite := func(phone, inviter string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/groups/"+groupID+"/invitations",
			models.InviteRequest{PhoneNumber: phone, InviterID: inviter}, nil)
		req.SetPathValue("id", groupID)
		w := httptest.NewRecorder()
		handler.Invite(w, req)
		return w
	}
	respond := func(userID, status string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PUT", "/groups/"+groupID+"/invitations/"+userID,
			models.RespondRequest{Status: status}, nil)
		req.SetPathValue("id", groupID)
		req.SetPathValue("user_id", userID)
		w := httptest.NewRecorder()
		handler.Respond(w, req)
		return w
	}
	leave := func(userID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/groups/"+groupID+"/members/"+userID, nil, nil)
		req.SetPathValue("id", groupID)
		req.SetPathValue("user_id", userID)
		w := httptest.NewRecorder()
		handler.Leave(w, req)
		return w
	}

	testutil.AssertStatus(t, invite("5550000002", outsider), http.StatusForbidden)
	testutil.AssertStatus(t, invite("5559999999", adminID), http.StatusNotFound)
	testutil.AssertStatus(t, invite("555", adminID), http.StatusBadRequest)
	testutil.AssertStatus(t, invite("5550000002", adminID), http.StatusCreated)
	testutil.AssertStatus(t, invite("5550000002", adminID), http.StatusConflict)

	// Decline, then a fresh invitation is allowed
	w := respond(guestID, models.StatusDenied)
	testutil.AssertStatus(t, w, http.StatusOK)
	var declined models.RespondResponse
	testutil.AssertJSON(t, w, &declined)
	if declined.Group != nil || declined.Message != "Invitation declined" {
		t.Errorf("Unexpected decline response: %+v", declined)
	}
	testutil.AssertStatus(t, respond(guestID, models.StatusAccepted), http.StatusConflict)
	testutil.AssertStatus(t, invite("5550000002", adminID), http.StatusCreated)

	testutil.AssertStatus(t, respond(guestID, "maybe"), http.StatusBadRequest)

	w = respond(guestID, models.StatusAccepted)
	testutil.AssertStatus(t, w, http.StatusOK)
	var accepted models.RespondResponse
	testutil.AssertJSON(t, w, &accepted)
	if accepted.Group == nil || accepted.Group.ID != groupID {
		t.Errorf("Expected joined group in response, got %+v", accepted)
	}
	testutil.AssertStatus(t, respond(outsider, models.StatusAccepted), http.StatusNotFound)

	testutil.AssertStatus(t, leave(adminID), http.StatusConflict)
	testutil.AssertStatus(t, leave(guestID), http.StatusOK)
	testutil.AssertStatus(t, leave(guestID), http.StatusForbidden)

	if status := testutil.MembershipStatus(t, db, groupID, guestID); status != "" {
		t.Errorf("Expected membership removed, got %q", status)
	}
}
