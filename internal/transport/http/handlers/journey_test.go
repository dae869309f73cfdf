package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSignupCheckInCheckOutJourney(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := uniqueEmail("journey")
	token, employeeID := signup(t, client, ts.URL, email)

	// Signing in again must issue a fresh token for the same account.
	signin(t, client, ts.URL, email, "Sunny1234")

	resp := postJSON(t, client, ts.URL+"/api/v1/attendance/check-in", token, nil)
	var record struct {
		ID          string `json:"id"`
		EmployeeID  string `json:"employeeId"`
		Status      string `json:"status"`
		CheckInTime string `json:"checkInTime"`
	}
	if err := json.Unmarshal(resp.Data, &record); err != nil {
		t.Fatalf("failed to decode check-in response: %v", err)
	}
	if record.EmployeeID != employeeID {
		t.Fatalf("expected check-in for employee %s, got %s", employeeID, record.EmployeeID)
	}
	if record.CheckInTime == "" {
		t.Fatal("expected a check-in timestamp")
	}

	env := postJSONStatus(t, client, ts.URL+"/api/v1/attendance/check-in", token, nil, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "already_checked_in" {
		t.Fatalf("expected already_checked_in error, got %+v", env.Error)
	}

	resp = postJSON(t, client, ts.URL+"/api/v1/attendance/check-out", token, nil)
	var checkedOut struct {
		CheckOutTime string  `json:"checkOutTime"`
		TotalHours   float64 `json:"totalHours"`
	}
	if err := json.Unmarshal(resp.Data, &checkedOut); err != nil {
		t.Fatalf("failed to decode check-out response: %v", err)
	}
	if checkedOut.CheckOutTime == "" {
		t.Fatal("expected a check-out timestamp")
	}

	env = postJSONStatus(t, client, ts.URL+"/api/v1/attendance/check-out", token, nil, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "already_checked_out" {
		t.Fatalf("expected already_checked_out error, got %+v", env.Error)
	}

	resp = getJSON(t, client, ts.URL+"/api/v1/attendance", token)
	var records []map[string]any
	if err := json.Unmarshal(resp.Data, &records); err != nil {
		t.Fatalf("failed to decode attendance list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one attendance record, got %d", len(records))
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token, _ := signup(t, client, ts.URL, uniqueEmail("nocheckin"))

	env := postJSONStatus(t, client, ts.URL+"/api/v1/attendance/check-out", token, nil, http.StatusNotFound)
	if env.Error == nil || env.Error.Code != "no_check_in" {
		t.Fatalf("expected no_check_in error, got %+v", env.Error)
	}
}

func TestDuplicateSignupRejected(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := uniqueEmail("duplicate")
	signup(t, client, ts.URL, email)

	env := postJSONStatus(t, client, ts.URL+"/api/v1/auth/signup", "", map[string]any{
		"email":     email,
		"password":  "Sunny1234",
		"firstName": "Second",
		"lastName":  "Attempt",
	}, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "duplicate_email" {
		t.Fatalf("expected duplicate_email error, got %+v", env.Error)
	}
}

func TestSignupValidation(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	env := postJSONStatus(t, client, ts.URL+"/api/v1/auth/signup", "", map[string]any{
		"email":     "not-an-email",
		"password":  "weak",
		"firstName": "",
		"lastName":  "Person",
	}, http.StatusBadRequest)
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
}

func TestSigninWrongPassword(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	email := uniqueEmail("wrongpass")
	signup(t, client, ts.URL, email)

	env := postJSONStatus(t, client, ts.URL+"/api/v1/auth/signin", "", map[string]any{
		"email":    email,
		"password": "NotTheRight1",
	}, http.StatusUnauthorized)
	if env.Error == nil || env.Error.Code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %+v", env.Error)
	}
}

func TestEmployeeListRequiresAdmin(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token, _ := signup(t, client, ts.URL, uniqueEmail("nonadmin"))
	getJSONStatus(t, client, ts.URL+"/api/v1/employees", token, http.StatusForbidden)

	adminToken := signin(t, client, ts.URL, "admin@test.local", "ChangeMe123!")
	resp := getJSON(t, client, ts.URL+"/api/v1/employees?page=1&pageSize=5", adminToken)
	var page struct {
		Data       []map[string]any `json:"data"`
		Total      int              `json:"total"`
		Page       int              `json:"page"`
		PageSize   int              `json:"pageSize"`
		TotalPages int              `json:"totalPages"`
	}
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatalf("failed to decode employee page: %v", err)
	}
	if page.Total < 1 || page.PageSize != 5 {
		t.Fatalf("expected populated page of size 5, got total=%d pageSize=%d", page.Total, page.PageSize)
	}
}

func TestEmployeeSelfUpdateLimitedToPhone(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token, employeeID := signup(t, client, ts.URL, uniqueEmail("selfupdate"))

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/v1/employees/"+employeeID,
		jsonBody(t, map[string]any{"salary": 999999}))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for self salary change, got %d", resp.StatusCode)
	}

	req, err = http.NewRequest(http.MethodPatch, ts.URL+"/api/v1/employees/"+employeeID,
		jsonBody(t, map[string]any{"phone": "+15550100"}))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for self phone change, got %d", resp.StatusCode)
	}
}
