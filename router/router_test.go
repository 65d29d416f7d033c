// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liberatoaguilartamu/barpoll/models"
	"github.com/liberatoaguilartamu/barpoll/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())
	db.Close()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "barpoll API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/no-such-route", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())

	// Routes respond through their handler; 400/403/404 are all valid
	// outcomes for empty requests
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/polls/today"},
		{"GET", "/polls"},

		{"POST", "/votes"},
		{"GET", "/users/u1/vote-status"},
		{"GET", "/users/u1/votes"},

		{"POST", "/groups"},
		{"GET", "/groups"},
		{"GET", "/groups/g1"},
		{"DELETE", "/groups/g1"},
		{"POST", "/groups/g1/invitations"},
		{"PUT", "/groups/g1/invitations/u1"},
		{"DELETE", "/groups/g1/members/u1"},

		{"POST", "/auth/signup"},
		{"POST", "/auth/login"},
		{"GET", "/users/u1/profile"},
		{"PUT", "/users/u1/profile"},
		{"PUT", "/users/u1/password"},

		{"GET", "/cities"},
		{"GET", "/cities/c1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Code >= 500 {
				t.Errorf("Route %s %s returned %d: %s", tc.method, tc.path, w.Code, w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/votes"},
		{"PUT", "/groups"},
		{"POST", "/users/u1/profile"},
		{"GET", "/groups/g1/invitations"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cityID := testutil.CreateCity(t, db, "Austin")
	adminID := testutil.CreateUser(t, db, cityID, "Ada", "5550000001", false)
	guestID := testutil.CreateUser(t, db, cityID, "Gus", "5550000002", false)
	groupID := testutil.CreateGroup(t, db, cityID, "Crew", adminID)
	testutil.AddMember(t, db, groupID, guestID, models.StatusPending)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())

	t.Run("group and user IDs", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/groups/"+groupID+"/invitations/"+guestID,
			models.RespondRequest{Status: models.StatusAccepted}, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if status := testutil.MembershipStatus(t, db, groupID, guestID); status != models.StatusAccepted {
			t.Errorf("Expected accepted membership, got %q", status)
		}
	})

	t.Run("city ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cities/"+cityID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.CityResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.City.ID != cityID {
			t.Errorf("Expected city %s, got %s", cityID, resp.City.ID)
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig(), testutil.Clock())

	req := httptest.NewRequest("OPTIONS", "/votes", nil)
	req.Header.Set("Origin", "https://barpoll.example")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://barpoll.example" {
		t.Errorf("Expected origin echoed, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2
	mux := NewRouter(db, cfg, testutil.Clock())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/cities", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected the burst to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after the burst, got %d", codes[2])
	}
}
