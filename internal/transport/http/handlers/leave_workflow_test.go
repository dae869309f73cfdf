package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestLeaveApplyAndApprove(t *testing.T) {
	app, ts := newTestApp(t)
	client := ts.Client()

	token, employeeID := signup(t, client, ts.URL, uniqueEmail("leave"))
	adminToken := signin(t, client, ts.URL, "admin@test.local", "ChangeMe123!")

	resp := getJSON(t, client, ts.URL+"/api/v1/leave/types", token)
	var types []struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Data, &types); err != nil {
		t.Fatalf("failed to decode leave types: %v", err)
	}
	if len(types) == 0 {
		t.Fatal("expected seeded leave types")
	}
	leaveTypeID := types[0].ID

	year := time.Now().Year()
	if _, err := app.DB.Exec(context.Background(), `
    INSERT INTO leave_balances (employee_id, leave_type_id, year, entitled_days, remaining_days)
    VALUES ($1, $2, $3, 10, 10)
    ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET remaining_days = 10
  `, employeeID, leaveTypeID, year); err != nil {
		t.Fatalf("failed to seed balance: %v", err)
	}

	fromDate := time.Date(year, 12, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	toDate := time.Date(year, 12, 3, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	resp = postJSON(t, client, ts.URL+"/api/v1/leave", token, map[string]any{
		"leaveTypeId": leaveTypeID,
		"fromDate":    fromDate,
		"toDate":      toDate,
		"reason":      "Family visit",
	})
	var application struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		DaysRequested int    `json:"daysRequested"`
	}
	if err := json.Unmarshal(resp.Data, &application); err != nil {
		t.Fatalf("failed to decode application: %v", err)
	}
	if application.Status != "PENDING" {
		t.Fatalf("expected PENDING application, got %s", application.Status)
	}
	if application.DaysRequested != 3 {
		t.Fatalf("expected 3 days requested, got %d", application.DaysRequested)
	}

	// Only admins may decide.
	postJSONStatus(t, client, ts.URL+"/api/v1/leave/"+application.ID+"/approve", token, nil, http.StatusForbidden)

	resp = postJSON(t, client, ts.URL+"/api/v1/leave/"+application.ID+"/approve", adminToken, nil)
	var decided struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &decided); err != nil {
		t.Fatalf("failed to decode decision: %v", err)
	}
	if decided.Status != "APPROVED" {
		t.Fatalf("expected APPROVED, got %s", decided.Status)
	}

	env := postJSONStatus(t, client, ts.URL+"/api/v1/leave/"+application.ID+"/reject", adminToken, nil, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "already_decided" {
		t.Fatalf("expected already_decided error, got %+v", env.Error)
	}

	var remaining float64
	if err := app.DB.QueryRow(context.Background(), `
    SELECT remaining_days FROM leave_balances
    WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
  `, employeeID, leaveTypeID, year).Scan(&remaining); err != nil {
		t.Fatalf("failed to load balance: %v", err)
	}
	if remaining != 7 {
		t.Fatalf("expected remaining balance 7 after approving 3 days, got %v", remaining)
	}
}

func TestLeaveInsufficientBalance(t *testing.T) {
	app, ts := newTestApp(t)
	client := ts.Client()

	token, employeeID := signup(t, client, ts.URL, uniqueEmail("nobalance"))

	resp := getJSON(t, client, ts.URL+"/api/v1/leave/types", token)
	var types []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &types); err != nil {
		t.Fatalf("failed to decode leave types: %v", err)
	}
	leaveTypeID := types[0].ID

	year := time.Now().Year()
	if _, err := app.DB.Exec(context.Background(), `
    INSERT INTO leave_balances (employee_id, leave_type_id, year, entitled_days, remaining_days)
    VALUES ($1, $2, $3, 1, 1)
    ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET remaining_days = 1
  `, employeeID, leaveTypeID, year); err != nil {
		t.Fatalf("failed to seed balance: %v", err)
	}

	env := postJSONStatus(t, client, ts.URL+"/api/v1/leave", token, map[string]any{
		"leaveTypeId": leaveTypeID,
		"fromDate":    "2026-11-02",
		"toDate":      "2026-11-06",
	}, http.StatusBadRequest)
	if env.Error == nil || env.Error.Code != "insufficient_balance" {
		t.Fatalf("expected insufficient_balance error, got %+v", env.Error)
	}
}

func TestLeaveInvalidDateRange(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token, _ := signup(t, client, ts.URL, uniqueEmail("baddates"))

	resp := getJSON(t, client, ts.URL+"/api/v1/leave/types", token)
	var types []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &types); err != nil {
		t.Fatalf("failed to decode leave types: %v", err)
	}

	env := postJSONStatus(t, client, ts.URL+"/api/v1/leave", token, map[string]any{
		"leaveTypeId": types[0].ID,
		"fromDate":    "2026-11-06",
		"toDate":      "2026-11-02",
	}, http.StatusBadRequest)
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
}

func TestLeaveListScopedToSelf(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	tokenA, _ := signup(t, client, ts.URL, uniqueEmail("scope-a"))
	tokenB, _ := signup(t, client, ts.URL, uniqueEmail("scope-b"))

	resp := getJSON(t, client, ts.URL+"/api/v1/leave/types", tokenA)
	var types []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &types); err != nil {
		t.Fatalf("failed to decode leave types: %v", err)
	}

	postJSON(t, client, ts.URL+"/api/v1/leave", tokenA, map[string]any{
		"leaveTypeId": types[0].ID,
		"fromDate":    "2026-10-01",
		"toDate":      "2026-10-02",
	})

	resp = getJSON(t, client, ts.URL+"/api/v1/leave", tokenB)
	var apps []map[string]any
	if err := json.Unmarshal(resp.Data, &apps); err != nil {
		t.Fatalf("failed to decode applications: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("expected no applications visible to another employee, got %d", len(apps))
	}
}
