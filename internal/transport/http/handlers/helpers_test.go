package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"dayflow/internal/app/server"
	"dayflow/internal/platform/config"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		Addr:               ":0",
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MigrationsDir:      "../../../../migrations",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		LateAfter:          "09:30",
		EmailFrom:          "no-reply@test.local",
	}
}

func newTestApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func signup(t *testing.T, client *http.Client, baseURL, email string) (token, employeeID string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/signup", "", map[string]any{
		"email":     email,
		"password":  "Sunny1234",
		"firstName": "Test",
		"lastName":  "Employee",
	})
	var payload struct {
		Token    string `json:"token"`
		Employee struct {
			ID string `json:"id"`
		} `json:"employee"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}
	if payload.Token == "" || payload.Employee.ID == "" {
		t.Fatalf("expected token and employee id, got %s", string(resp.Data))
	}
	return payload.Token, payload.Employee.ID
}

func signin(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/signin", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode signin response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	env, status, raw := doJSON(t, client, http.MethodPost, url, token, body)
	if status >= 400 {
		t.Fatalf("unexpected status %d: %s", status, raw)
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	env, status, raw := doJSON(t, client, http.MethodPost, url, token, body)
	if status != want {
		t.Fatalf("expected status %d, got %d: %s", want, status, raw)
	}
	return env
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	env, status, raw := doJSON(t, client, http.MethodGet, url, token, nil)
	if status >= 400 {
		t.Fatalf("unexpected status %d: %s", status, raw)
	}
	return env
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string, want int) envelope {
	t.Helper()
	env, status, raw := doJSON(t, client, http.MethodGet, url, token, nil)
	if status != want {
		t.Fatalf("expected status %d, got %d: %s", want, status, raw)
	}
	return env
}

func jsonBody(t *testing.T, body any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewBuffer(raw)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (envelope, int, string) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env, resp.StatusCode, string(raw)
}
