package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/myrjola/coachapp/internal/plan"
	"github.com/myrjola/coachapp/internal/sqlite"
	"github.com/myrjola/coachapp/internal/testhelpers"
)

// newTestServer starts the full handler chain against an in-memory database
// and returns a TLS test server with a cookie-aware client.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close database: %v", closeErr)
		}
	})

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		planService:    plan.NewService(db, logger, plan.DefaultConfig()),
		db:             db,
	}

	server := httptest.NewTLSServer(app.routes())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := server.Client()
	client.Jar = jar
	return server, client
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func login(t *testing.T, client *http.Client, baseURL, displayName string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/login", map[string]string{"display_name": displayName})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		UserID int `json:"user_id"`
	}
	decodeBody(t, resp, &body)
	if body.UserID == 0 {
		t.Fatal("login returned zero user id")
	}
}

func TestAPI_Healthy(t *testing.T) {
	server, client := newTestServer(t)

	resp := get(t, client, server.URL+"/api/healthy")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	server, client := newTestServer(t)

	urls := []string{
		server.URL + "/api/profile",
		server.URL + "/api/plans/2026-06-10",
		server.URL + "/api/export",
	}
	for _, url := range urls {
		resp := get(t, client, url)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", url, resp.StatusCode)
		}
	}
}

func TestAPI_PlanLifecycle(t *testing.T) {
	server, client := newTestServer(t)
	login(t, client, server.URL, "Petra")

	const planDate = "2026-06-10"

	resp := postJSON(t, client, server.URL+"/api/recovery", map[string]any{
		"date":           planDate,
		"recovery_score": 90,
		"sleep_summary":  "7.5h sleep",
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("recovery status = %d, want 201", resp.StatusCode)
	}

	resp = postJSON(t, client, server.URL+"/api/checkins", map[string]any{
		"date":           planDate,
		"soreness":       1,
		"pain_locations": []string{},
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("check-in status = %d, want 201", resp.StatusCode)
	}

	resp = postJSON(t, client, fmt.Sprintf("%s/api/plans/%s/generate", server.URL, planDate), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status = %d, want 201", resp.StatusCode)
	}
	var generated plan.Plan
	decodeBody(t, resp, &generated)
	if len(generated.Today) == 0 {
		t.Fatal("generated plan has no options")
	}
	if generated.RecoveryScore != 90 {
		t.Errorf("plan recovery = %d, want 90", generated.RecoveryScore)
	}

	resp = get(t, client, fmt.Sprintf("%s/api/plans/%s", server.URL, planDate))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("plan fetch status = %d, want 200", resp.StatusCode)
	}
	var fetched plan.Plan
	decodeBody(t, resp, &fetched)
	if fetched.Today[0].Option.ID != generated.Today[0].Option.ID {
		t.Errorf("fetched primary = %s, generated %s",
			fetched.Today[0].Option.ID, generated.Today[0].Option.ID)
	}

	resp = get(t, client, fmt.Sprintf("%s/api/plans/%s/summary", server.URL, planDate))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d, want 200", resp.StatusCode)
	}
	var summary map[string]string
	decodeBody(t, resp, &summary)
	if !strings.Contains(summary["summary"], "Recovery: 90%") {
		t.Errorf("summary missing recovery score: %q", summary["summary"])
	}

	optionID := generated.Today[0].Option.ID
	resp = postJSON(t, client, fmt.Sprintf("%s/api/plans/%s/select", server.URL, planDate),
		map[string]string{"option_id": optionID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select status = %d, want 200", resp.StatusCode)
	}
	var selected map[string]string
	decodeBody(t, resp, &selected)
	if selected["selected_option_id"] != optionID {
		t.Errorf("selected option = %q, want %q", selected["selected_option_id"], optionID)
	}
}

func TestAPI_PlanErrors(t *testing.T) {
	server, client := newTestServer(t)
	login(t, client, server.URL, "Petra")

	resp := get(t, client, server.URL+"/api/plans/not-a-date")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("malformed date status = %d, want 404", resp.StatusCode)
	}

	resp = get(t, client, server.URL+"/api/plans/2026-06-10")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing plan status = %d, want 404", resp.StatusCode)
	}

	resp = postJSON(t, client, server.URL+"/api/checkins", map[string]any{
		"date":     "2026-06-10",
		"soreness": 7,
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid soreness status = %d, want 400", resp.StatusCode)
	}
}

func TestAPI_ProfileRoundTrip(t *testing.T) {
	server, client := newTestServer(t)
	login(t, client, server.URL, "Petra")

	want := plan.Profile{
		Equipment:       plan.EquipmentTravelBands,
		KBOverheadMaxKg: 10,
		KBHeavyKg:       16,
		KBSwingKg:       10,
	}
	resp := postJSON(t, client, server.URL+"/api/profile", want)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile save status = %d, want 200", resp.StatusCode)
	}

	resp = get(t, client, server.URL+"/api/profile")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile fetch status = %d, want 200", resp.StatusCode)
	}
	var got plan.Profile
	decodeBody(t, resp, &got)
	if got != want {
		t.Errorf("profile = %+v, want %+v", got, want)
	}
}

func TestAPI_Logout(t *testing.T) {
	server, client := newTestServer(t)
	login(t, client, server.URL, "Petra")

	resp := postJSON(t, client, server.URL+"/api/logout", nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}

	resp = get(t, client, server.URL+"/api/profile")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("post-logout profile status = %d, want 401", resp.StatusCode)
	}
}

func TestAPI_Export(t *testing.T) {
	server, client := newTestServer(t)
	login(t, client, server.URL, "Petra")

	resp := get(t, client, server.URL+"/api/export")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/vnd.sqlite3" {
		t.Errorf("content type = %q, want application/vnd.sqlite3", got)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read export body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("SQLite format 3")) {
		t.Error("export is not a SQLite database file")
	}
}
