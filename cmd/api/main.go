package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/taskdeck/taskdeck/internal/migrations"
	"github.com/taskdeck/taskdeck/internal/router"
	"github.com/taskdeck/taskdeck/pkg/database"
	"github.com/taskdeck/taskdeck/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// best-effort: if no .env exists, continue with real env or defaults
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting taskdeck api")

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// apply schema migrations before serving
	if err := migrations.Up(context.Background(), sqlDB); err != nil {
		sugar.Fatalf("migrations: %v", err)
	}

	// wrap with sqlx for convenience in repos
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	handler := router.RegisterRoutes(sugar, sqlxDB)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running", "addr", addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
