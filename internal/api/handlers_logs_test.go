package api

import (
	"net/http"
	"testing"
)

type periodPayload struct {
	ID        uint    `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type energyPayload struct {
	ID          uint    `json:"id"`
	EnergyLevel int     `json:"energy_level"`
	Mood        *string `json:"mood"`
	CycleDay    *int    `json:"cycle_day"`
	CyclePhase  *string `json:"cycle_phase"`
}

func TestPeriodStartAndEnd(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	token := configuredTestUser(t, app, "periods@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/periods", map[string]any{"date": "2024-01-10"}, token)
	expectStatus(t, response, http.StatusCreated)
	created := periodPayload{}
	readJSON(t, response, &created)
	if created.ID == 0 {
		t.Fatal("expected period id")
	}

	response = doJSON(t, app, http.MethodPost, "/api/periods", map[string]any{"date": "2024-01-10"}, token)
	expectStatus(t, response, http.StatusOK)
	duplicate := periodPayload{}
	readJSON(t, response, &duplicate)
	if duplicate.ID != created.ID {
		t.Fatalf("expected existing period %d, got %d", created.ID, duplicate.ID)
	}

	response = doJSON(t, app, http.MethodGet, "/api/profile", nil, token)
	view := profileView{}
	readJSON(t, response, &view)
	if view.LastPeriodStart == nil || *view.LastPeriodStart != "2024-01-10" {
		t.Fatalf("expected last period start to advance, got %v", view.LastPeriodStart)
	}

	response = doJSON(t, app, http.MethodPatch, "/api/periods/"+uintString(created.ID), map[string]any{"end_date": "2024-01-14"}, token)
	expectStatus(t, response, http.StatusOK)
	ended := periodPayload{}
	readJSON(t, response, &ended)
	if ended.EndDate == nil {
		t.Fatal("expected end date")
	}

	response = doJSON(t, app, http.MethodPatch, "/api/periods/"+uintString(created.ID), map[string]any{"end_date": "2024-01-09"}, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	response = doJSON(t, app, http.MethodPatch, "/api/periods/999", map[string]any{"end_date": "2024-01-14"}, token)
	expectStatus(t, response, http.StatusNotFound)
	response.Body.Close()

	response = doJSON(t, app, http.MethodPatch, "/api/periods/abc", map[string]any{"end_date": "2024-01-14"}, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	response = doJSON(t, app, http.MethodGet, "/api/periods", nil, token)
	expectStatus(t, response, http.StatusOK)
	list := struct {
		Periods []periodPayload `json:"periods"`
	}{}
	readJSON(t, response, &list)
	if len(list.Periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(list.Periods))
	}
}

func TestPeriodStartRejectsFutureDate(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "future-period@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/periods", map[string]any{"date": "2024-01-15"}, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	response = doJSON(t, app, http.MethodPost, "/api/periods", map[string]any{"date": "yesterday"}, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()
}

func TestEnergyCheckIn(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	token := configuredTestUser(t, app, "energy@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/energy/today", nil, token)
	expectStatus(t, response, http.StatusNotFound)
	response.Body.Close()

	response = doJSON(t, app, http.MethodPost, "/api/energy", map[string]any{
		"energy_level": 8,
		"mood":         "good",
	}, token)
	expectStatus(t, response, http.StatusCreated)
	entry := energyPayload{}
	readJSON(t, response, &entry)
	if entry.CycleDay == nil || *entry.CycleDay != 14 || entry.CyclePhase == nil || *entry.CyclePhase != "ovulation" {
		t.Fatalf("expected ovulation stamp on day 14, got %+v", entry)
	}

	response = doJSON(t, app, http.MethodGet, "/api/energy/today", nil, token)
	expectStatus(t, response, http.StatusOK)
	today := energyPayload{}
	readJSON(t, response, &today)
	if today.ID != entry.ID || today.EnergyLevel != 8 {
		t.Fatalf("expected today's entry %d, got %+v", entry.ID, today)
	}

	response = doJSON(t, app, http.MethodGet, "/api/energy?from=2024-01-14&to=2024-01-14", nil, token)
	expectStatus(t, response, http.StatusOK)
	ranged := struct {
		Logs []energyPayload `json:"logs"`
	}{}
	readJSON(t, response, &ranged)
	if len(ranged.Logs) != 1 {
		t.Fatalf("expected 1 log in range, got %d", len(ranged.Logs))
	}

	response = doJSON(t, app, http.MethodGet, "/api/energy?from=2024-01-20&to=2024-01-10", nil, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()
}

func TestEnergyCheckInValidation(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "energy-invalid@example.com")

	payloads := []map[string]any{
		{"energy_level": 0},
		{"energy_level": 11},
		{"energy_level": 5, "focus_level": 12},
		{"energy_level": 5, "mood": "ecstatic"},
		{"energy_level": 5, "focus": "laser"},
	}
	for _, payload := range payloads {
		response := doJSON(t, app, http.MethodPost, "/api/energy", payload, token)
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %v, got %d", payload, response.StatusCode)
		}
		response.Body.Close()
	}
}

func TestSymptomLogging(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)
	token := configuredTestUser(t, app, "symptoms@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/symptoms", map[string]any{
		"date":        "2024-01-10",
		"cramps":      2,
		"sleep_hours": 7.5,
	}, token)
	expectStatus(t, response, http.StatusCreated)
	entry := struct {
		Cramps   int  `json:"cramps"`
		CycleDay *int `json:"cycle_day"`
	}{}
	readJSON(t, response, &entry)
	if entry.Cramps != 2 || entry.CycleDay == nil || *entry.CycleDay != 10 {
		t.Fatalf("unexpected symptom entry %+v", entry)
	}

	response = doJSON(t, app, http.MethodPost, "/api/symptoms", map[string]any{"cramps": 4}, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	response = doJSON(t, app, http.MethodPost, "/api/symptoms", map[string]any{"date": "2024-02-01"}, token)
	expectStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	response = doJSON(t, app, http.MethodGet, "/api/symptoms", nil, token)
	expectStatus(t, response, http.StatusOK)
	list := struct {
		Logs []map[string]any `json:"logs"`
	}{}
	readJSON(t, response, &list)
	if len(list.Logs) != 1 {
		t.Fatalf("expected 1 symptom log, got %d", len(list.Logs))
	}
}
