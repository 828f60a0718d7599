package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func reportCrowd(t *testing.T, h http.Handler, personCount int) int {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/api/crowd/report", "", map[string]any{
		"personCount": personCount,
	})
	return w.Code
}

type latestResponse struct {
	PersonCount int    `json:"personCount"`
	CrowdLevel  string `json:"crowdLevel"`
	Color       string `json:"color"`
}

func getLatest(t *testing.T, h http.Handler) (int, latestResponse) {
	t.Helper()

	w := doJSON(t, h, http.MethodGet, "/api/crowd/latest", "", nil)
	var resp latestResponse
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode latest response: %v", err)
		}
	}
	return w.Code, resp
}

func TestCrowdFlow_Integration(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	h := newTestHandler(pool)

	// Empty log: no synthetic zero sample
	code, _ := getLatest(t, h)
	if code != http.StatusNotFound {
		t.Fatalf("Expected status 404 on empty crowd log, got %d", code)
	}

	steps := []struct {
		count     int
		wantLevel string
		wantColor string
	}{
		{20, "Not Busy", "green"},
		{30, "Busy", "yellow"},
		{60, "Crowded", "red"},
	}
	for _, step := range steps {
		if code := reportCrowd(t, h, step.count); code != http.StatusCreated {
			t.Fatalf("Expected status 201 reporting %d, got %d", step.count, code)
		}

		code, latest := getLatest(t, h)
		if code != http.StatusOK {
			t.Fatalf("Expected status 200 for latest, got %d", code)
		}
		if latest.PersonCount != step.count || latest.CrowdLevel != step.wantLevel || latest.Color != step.wantColor {
			t.Errorf("After report(%d): got {%d, %s, %s}, want {%d, %s, %s}",
				step.count, latest.PersonCount, latest.CrowdLevel, latest.Color,
				step.count, step.wantLevel, step.wantColor)
		}
	}

	// History is newest first and capped by limit
	w := doJSON(t, h, http.MethodGet, "/api/crowd/history?limit=2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for history, got %d", w.Code)
	}

	var history []struct {
		PersonCount int `json:"personCount"`
	}
	if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
		t.Fatalf("Failed to decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected history of 2 entries, got %d", len(history))
	}
	if history[0].PersonCount != 60 || history[1].PersonCount != 30 {
		t.Errorf("Expected history [60, 30], got [%d, %d]", history[0].PersonCount, history[1].PersonCount)
	}
}

func TestReportCrowd_Invalid(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	h := newTestHandler(pool)

	if code := reportCrowd(t, h, -5); code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative count, got %d", code)
	}

	w := doJSON(t, h, http.MethodPost, "/api/crowd/report", "", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing personCount, got %d", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, "/api/crowd/report", "", map[string]any{"personCount": "many"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-numeric personCount, got %d", w.Code)
	}
}

func TestDashboard_Integration(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	h := newTestHandler(pool)

	// Empty state: null crowd, empty menu
	w := doJSON(t, h, http.MethodGet, "/api/dashboard", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for dashboard, got %d", w.Code)
	}

	var resp struct {
		Crowd *latestResponse `json:"crowd"`
		Menu  []struct {
			Name string `json:"name"`
		} `json:"menu"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode dashboard: %v", err)
	}
	if resp.Crowd != nil {
		t.Error("Expected null crowd on empty log")
	}
	if len(resp.Menu) != 0 {
		t.Errorf("Expected empty menu, got %d items", len(resp.Menu))
	}

	adminToken := registerAndLogin(t, h, "admin", "adminpw", "admin")
	createMenuItem(t, h, adminToken, "Soup", 2.00)
	reportCrowd(t, h, 33)

	w = doJSON(t, h, http.MethodGet, "/api/dashboard", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for dashboard, got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode dashboard: %v", err)
	}
	if resp.Crowd == nil || resp.Crowd.CrowdLevel != "Busy" {
		t.Errorf("Expected Busy crowd state, got %+v", resp.Crowd)
	}
	if len(resp.Menu) != 1 || resp.Menu[0].Name != "Soup" {
		t.Errorf("Expected menu with Soup, got %+v", resp.Menu)
	}
}
