package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"restaurant/cmd"
	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/localauth"
	"restaurant/internal/adapters/out/localstate"
	"restaurant/internal/adapters/out/pgnotify"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/application/background"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl := logger.New(logger.Config{Env: configs.Env, Level: configs.LogLevel}, nil)
	if err = run(configs, zl); err != nil {
		zl.Fatal().Err(err).Msg("server stopped")
	}
}

func run(configs cmd.Config, zl zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB, &localauth.CredentialDTO{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	state, err := localstate.Open(configs.StateFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", configs.StateFile, err)
	}
	defer func() { _ = state.Close() }()

	hub := pgnotify.Dial(configs.DSN(), configs.ListenerMinReconnect, configs.ListenerMaxReconnect,
		logger.Component(zl, "change_feed"))
	go func() {
		if err := hub.Run(ctx); err != nil {
			zl.Error().Err(err).Msg("change feed stopped")
		}
	}()

	runner := background.NewRunner(configs.BackgroundTimeout, 16, logger.Component(zl, "background"))
	go drainBackgroundErrors(runner, zl)
	defer runner.Close()

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, hub, state, runner, zl)
	if err != nil {
		return err
	}

	jobManager := jobs.NewJobManager(app.CreateMaintenanceJob())
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs)
}

func drainBackgroundErrors(runner *background.Runner, zl zerolog.Logger) {
	for err := range runner.Errors() {
		var taskErr *background.TaskError
		if errors.As(err, &taskErr) {
			zl.Error().Err(taskErr.Err).Str("task", taskErr.Name).Msg("background task failed")
			continue
		}
		zl.Error().Err(err).Msg("background task failed")
	}
}

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug", "trace":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) error {
	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		return err
	}
	if err = httpin.RegisterSwaggerDoc(doc); err != nil {
		return err
	}
	validator, err := httpin.NewRequestValidator(doc)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))
	// Live streams end with the process context instead of holding Shutdown.
	e.Server.BaseContext = func(net.Listener) context.Context { return ctx }
	app.CreateHTTPServer().Register(e, validator)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
