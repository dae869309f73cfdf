package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAuditTrailAdminOnly(t *testing.T) {
	_, ts := newTestApp(t)
	client := ts.Client()

	token, _ := signup(t, client, ts.URL, uniqueEmail("audited"))
	getJSONStatus(t, client, ts.URL+"/api/v1/audit", token, http.StatusForbidden)

	adminToken := signin(t, client, ts.URL, "admin@test.local", "ChangeMe123!")
	resp := getJSON(t, client, ts.URL+"/api/v1/audit?action=account.signup", adminToken)
	var events []struct {
		Action   string `json:"action"`
		Entity   string `json:"entity"`
		EntityID string `json:"entityId"`
	}
	if err := json.Unmarshal(resp.Data, &events); err != nil {
		t.Fatalf("failed to decode audit events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected the signup to leave an audit event")
	}
	for _, evt := range events {
		if evt.Action != "account.signup" || evt.Entity != "account" {
			t.Fatalf("expected filtered signup events, got %+v", evt)
		}
	}
}
