package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"milk-delivery-service/internal/adapters/memory"
	"milk-delivery-service/internal/adapters/repositories"
	"milk-delivery-service/internal/adapters/spreadsheet"
	"milk-delivery-service/internal/api"
	"milk-delivery-service/internal/config"
	"milk-delivery-service/internal/platform/db"
	"milk-delivery-service/internal/ports"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the configured store adapter behind the RecordStore port and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	router := api.NewRouter(store)

	log.Printf("Server listening addr=:%s backend=%s", cfg.Port, cfg.Backend)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openStore(ctx context.Context, cfg config.Config) (ports.RecordStore, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendSheets:
		store, err := spreadsheet.NewRecordStore(ctx, cfg.SheetID, cfg.Account)
		if err != nil {
			return nil, noop, fmt.Errorf("open store: %w", err)
		}
		return store, noop, nil

	case config.BackendPostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open store: %w", err)
		}
		return sqlStore(conn, repositories.Postgres)

	case config.BackendSqlite:
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open store: %w", err)
		}
		return sqlStore(conn, repositories.Sqlite)

	case config.BackendMemory:
		log.Println("Using in-memory store; data is lost on restart")
		return memory.NewMemoryRecordStore(), noop, nil
	}

	return nil, noop, fmt.Errorf("open store: unknown backend %q", cfg.Backend)
}

// sqlStore makes sure the schema exists before serving from a SQL backend.
func sqlStore(conn *sql.DB, dialect repositories.Dialect) (ports.RecordStore, func(), error) {
	closeFn := func() { _ = conn.Close() }

	if err := repositories.InitSchema(conn, dialect); err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("open store: %w", err)
	}

	return &repositories.SQLRecordStore{DB: conn, Dialect: dialect}, closeFn, nil
}
