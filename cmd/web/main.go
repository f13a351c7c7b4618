package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mkoskin/treeni/internal/catalog"
	"github.com/mkoskin/treeni/internal/envstruct"
	"github.com/mkoskin/treeni/internal/errors"
	"github.com/mkoskin/treeni/internal/flightrecorder"
	"github.com/mkoskin/treeni/internal/logging"
	"github.com/mkoskin/treeni/internal/metrics"
	"github.com/mkoskin/treeni/internal/planner"
	"github.com/mkoskin/treeni/internal/pprofserver"
	"github.com/mkoskin/treeni/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	plannerService *planner.Service
	history        *catalog.HistoryRepository
	equipment      *catalog.EquipmentRepository
	metrics        *metrics.Manager
	// flightRecorder is nil when trace capture is not configured.
	flightRecorder *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"TREENI_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"TREENI_SQLITE_URL" envDefault:"./treeni.sqlite3"`
	// PProfAddr is the optional address to listen on for the pprof server.
	PProfAddr string `env:"TREENI_PPROF_ADDR" envDefault:""`
	// TracesDir is the optional directory for runtime traces captured on
	// request timeouts. Empty disables the flight recorder.
	TracesDir string `env:"TREENI_TRACES_DIR" envDefault:""`
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

	if cfg.PProfAddr != "" {
		pprofserver.Launch(ctx, cfg.PProfAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var recorder *flightrecorder.Service
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			MinAge:          0, // Use default
			MaxBytes:        0, // Use default
			TracesDirectory: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "create flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	repos := catalog.NewRepositories(db, logger)
	app := application{
		logger: logger,
		plannerService: planner.NewService(
			repos.Exercises,
			repos.Equipment,
			repos.History,
			repos.Targets,
			repos.Substitutes,
			logger,
		),
		history:        repos.History,
		equipment:      repos.Equipment,
		metrics:        metrics.New("treeni"),
		flightRecorder: recorder,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
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
