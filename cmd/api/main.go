package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/sgacceso/service-acceso-go/internal/accesslog"
	accesslogrepo "github.com/sgacceso/service-acceso-go/internal/accesslog/repo"
	"github.com/sgacceso/service-acceso-go/internal/gate"
	"github.com/sgacceso/service-acceso-go/internal/registry"
	registryrepo "github.com/sgacceso/service-acceso-go/internal/registry/repo"
	"github.com/sgacceso/service-acceso-go/internal/router"
	"github.com/sgacceso/service-acceso-go/internal/terminal"
	terminalrepo "github.com/sgacceso/service-acceso-go/internal/terminal/repo"
	"github.com/sgacceso/service-acceso-go/pkg/database"
	"github.com/sgacceso/service-acceso-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-acceso-go")

	// init db
	cfg := database.ConfigFromEnv()
	db, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// schema bootstrap: the audit log and terminals belong to this service;
	// the registry tables are owned by the administrative service, EnsureTables
	// only matters on empty dev databases.
	logRepo := accesslogrepo.NewRepo(db)
	if err := logRepo.EnsureTable(ctx); err != nil {
		sugar.Fatalf("ensure access log table: %v", err)
	}
	termRepo := terminalrepo.NewRepo(db)
	if err := termRepo.EnsureTable(ctx); err != nil {
		sugar.Fatalf("ensure terminals table: %v", err)
	}
	regRepo := registryrepo.NewRepo(db)
	if err := regRepo.EnsureTables(ctx); err != nil {
		sugar.Fatalf("ensure registry tables: %v", err)
	}

	ids, err := utilities.NewSnowflakeNode()
	if err != nil {
		sugar.Fatalf("snowflake node: %v", err)
	}

	clock := clockwork.NewRealClock()
	logSvc := accesslog.NewService(logRepo, ids, clock, sugar)
	resolver := registry.NewService(regRepo, sugar)
	gateSvc := gate.NewService(resolver, logSvc, clock, sugar)
	termSvc := terminal.NewService(termRepo)

	bearerSecret := os.Getenv("ADMIN_TOKEN_SECRET")
	if bearerSecret == "" {
		sugar.Warn("ADMIN_TOKEN_SECRET not set; admin endpoints will reject every token")
	}

	handler := router.RegisterRoutes(router.Dependencies{
		Logger:       sugar,
		Gate:         gate.NewHandler(gateSvc, sugar),
		AccessLog:    accesslog.NewHandler(logSvc, sugar),
		Terminals:    termSvc,
		BearerSecret: []byte(bearerSecret),
	})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8442"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	sugar.Infow("service is running; press Ctrl+C to stop", "addr", addr)

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
