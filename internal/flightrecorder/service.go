// Package flightrecorder captures runtime traces of requests that blow
// their deadline.
package flightrecorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"
)

const (
	defaultMinAge   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024

	// captureCooldown limits how often traces are written so a flood of
	// timeouts cannot fill the disk.
	captureCooldown = 30 * time.Minute
)

// Service wraps the runtime flight recorder and writes trace dumps when a
// request times out.
type Service struct {
	logger      *slog.Logger
	recorder    *trace.FlightRecorder
	tracesDir   string
	lastCapture atomic.Int64
}

// Config configures the flight recorder service. MinAge and MaxBytes fall
// back to sensible defaults when zero.
type Config struct {
	Logger    *slog.Logger
	TracesDir string
	MinAge    time.Duration
	MaxBytes  uint64
}

// New creates a flight recorder service, creating the traces directory when
// it does not exist yet.
func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.TracesDir == "" {
		return nil, errors.New("traces directory is required")
	}

	if stat, err := os.Stat(cfg.TracesDir); err != nil {
		if err = os.MkdirAll(cfg.TracesDir, 0o700); err != nil {
			return nil, fmt.Errorf("create traces directory: %w", err)
		}
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("traces path is not a directory: %s", cfg.TracesDir)
	}

	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = defaultMinAge
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}

	recorder := trace.NewFlightRecorder(trace.FlightRecorderConfig{
		MinAge:   minAge,
		MaxBytes: maxBytes,
	})
	if recorder == nil {
		return nil, errors.New("create flight recorder")
	}

	return &Service{
		logger:      cfg.Logger,
		recorder:    recorder,
		tracesDir:   cfg.TracesDir,
		lastCapture: atomic.Int64{},
	}, nil
}

// Start begins recording.
func (s *Service) Start(ctx context.Context) error {
	if err := s.recorder.Start(); err != nil {
		return fmt.Errorf("start flight recorder: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("traces_dir", s.tracesDir))
	return nil
}

// Stop ends recording.
func (s *Service) Stop(ctx context.Context) {
	s.recorder.Stop()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// CaptureTimeoutTrace writes the recorded trace window to a file. Captures
// within the cooldown window are dropped.
func (s *Service) CaptureTimeoutTrace(ctx context.Context) {
	now := time.Now().Unix()
	last := s.lastCapture.Load()
	if last > 0 && time.Unix(now, 0).Sub(time.Unix(last, 0)) < captureCooldown {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "trace capture skipped during cooldown",
			slog.Time("last_capture", time.Unix(last, 0)))
		return
	}
	if !s.lastCapture.CompareAndSwap(last, now) {
		// Lost the race against a concurrent capture.
		return
	}

	timestamp := time.Unix(now, 0).UTC().Format("20060102-150405")
	path := filepath.Join(s.tracesDir, fmt.Sprintf("timeout-%s.trace", timestamp))

	file, err := os.Create(path)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to create trace file",
			slog.String("file", path), slog.Any("error", err))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to close trace file",
				slog.String("file", path), slog.Any("error", closeErr))
		}
	}()

	written, err := s.recorder.WriteTo(file)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to write trace",
			slog.String("file", path), slog.Any("error", err))
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "captured timeout trace",
		slog.String("file", path), slog.Int64("bytes", written))
}
