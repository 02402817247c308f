package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/coachapp/internal/envstruct"
	"github.com/myrjola/coachapp/internal/errors"
	"github.com/myrjola/coachapp/internal/flightrecorder"
	"github.com/myrjola/coachapp/internal/logging"
	"github.com/myrjola/coachapp/internal/plan"
	"github.com/myrjola/coachapp/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	planService    *plan.Service
	db             *sqlite.Database
	flightRecorder *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"COACHAPP_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"COACHAPP_SQLITE_URL" envDefault:"./coachapp.sqlite3"`
	// Scheduler enables the morning plan generation job.
	Scheduler string `env:"COACHAPP_SCHEDULER" envDefault:"true"`
	// TracesDir enables timeout trace capture when set to a directory path.
	TracesDir string `env:"COACHAPP_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	planCfg := plan.DefaultConfig()

	var recorder *flightrecorder.Service
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:    logger,
			TracesDir: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "create flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		planService:    plan.NewService(db, logger, planCfg),
		db:             db,
		flightRecorder: recorder,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if serveErr := app.configureAndStartServer(gctx, cfg.Addr); serveErr != nil {
			return errors.Wrap(serveErr, "start server")
		}
		return nil
	})
	if cfg.Scheduler == "true" {
		g.Go(func() error {
			scheduler := plan.NewScheduler(app.planService, planCfg, logger)
			if schedErr := scheduler.Run(gctx); schedErr != nil && !errors.Is(schedErr, context.Canceled) {
				return errors.Wrap(schedErr, "run scheduler")
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run application")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                                //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
