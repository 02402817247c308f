// Command smoketest exercises a running server end to end: it waits for the
// server to come up, logs in and generates a plan through the JSON API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/myrjola/coachapp/internal/logging"
	"github.com/myrjola/coachapp/internal/testhelpers"
)

const (
	readyTimeout = 30 * time.Second
	testTimeout  = 10 * time.Second
)

func waitForReady(ctx context.Context, client *http.Client, url string) error {
	deadline := time.Now().Add(readyTimeout)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/healthy", nil)
		if err != nil {
			return fmt.Errorf("build readiness request: %w", err)
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("server not ready after %s: %w", readyTimeout, err)
		}
		time.Sleep(time.Second)
	}
}

func postJSON(ctx context.Context, client *http.Client, url string, body any, wantStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("POST %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	return nil
}

func testPlanFlow(ctx context.Context, client *http.Client, url string) error {
	ctx, cancel := context.WithTimeout(ctx, testTimeout)
	defer cancel()

	if err := postJSON(ctx, client, url+"/api/login",
		map[string]string{"display_name": "Smoke Tester"}, http.StatusOK); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	today := time.Now().Format(time.DateOnly)
	if err := postJSON(ctx, client, url+"/api/recovery", map[string]any{
		"date":           today,
		"recovery_score": 70,
		"sleep_summary":  "smoke test",
	}, http.StatusCreated); err != nil {
		return fmt.Errorf("save recovery: %w", err)
	}
	if err := postJSON(ctx, client, url+"/api/plans/"+today+"/generate", nil,
		http.StatusCreated); err != nil {
		return fmt.Errorf("generate plan: %w", err)
	}
	if err := postJSON(ctx, client, url+"/api/logout", nil, http.StatusOK); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating cookie jar", slog.Any("error", err))
		os.Exit(1)
	}
	client := &http.Client{Jar: jar}
	start := time.Now()

	if err = waitForReady(ctx, client, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = testPlanFlow(ctx, client, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing plan flow", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
