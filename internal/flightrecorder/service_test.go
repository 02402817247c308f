package flightrecorder_test

import (
	"os"
	"strings"
	"testing"

	"github.com/myrjola/coachapp/internal/flightrecorder"
	"github.com/myrjola/coachapp/internal/testhelpers"
)

func TestService_CaptureTimeoutTrace(t *testing.T) {
	ctx := t.Context()
	tracesDir := t.TempDir()

	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:    testhelpers.NewLogger(testhelpers.NewWriter(t)),
		TracesDir: tracesDir,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err = service.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer service.Stop(ctx)

	service.CaptureTimeoutTrace(ctx)

	entries, err := os.ReadDir(tracesDir)
	if err != nil {
		t.Fatalf("read traces directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one trace file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "timeout-") || !strings.HasSuffix(name, ".trace") {
		t.Errorf("unexpected trace file name %q", name)
	}

	// A second capture right after the first is swallowed by the cooldown.
	service.CaptureTimeoutTrace(ctx)
	entries, err = os.ReadDir(tracesDir)
	if err != nil {
		t.Fatalf("read traces directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("cooldown did not limit captures, got %d files", len(entries))
	}
}

func TestService_RequiresTracesDir(t *testing.T) {
	_, err := flightrecorder.New(flightrecorder.Config{
		Logger: testhelpers.NewLogger(testhelpers.NewWriter(t)),
	})
	if err == nil {
		t.Fatal("expected error without traces directory")
	}
}
