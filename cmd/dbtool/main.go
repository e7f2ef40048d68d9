package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"milk-delivery-service/internal/adapters/repositories"
	"milk-delivery-service/internal/config"
	"milk-delivery-service/internal/platform/db"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	backend  string
	seedPath string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the SQL delivery stores",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.backend, "backend", config.Get("STORE_BACKEND", config.BackendSqlite), "sql backend: postgres or sqlite")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the deliveries schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, dialect, err := openDB(opts.backend)
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Println("Initializing database schema...")
			if err := repositories.InitSchema(conn, dialect); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			log.Println("Schema ready.")
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load seed deliveries (JSON or YAML)",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, dialect, err := openDB(opts.backend)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := repositories.InitSchema(conn, dialect); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}

			log.Printf("Seeding database from %s...", opts.seedPath)
			store := &repositories.SQLRecordStore{DB: conn, Dialect: dialect}
			n, err := repositories.Seed(cmd.Context(), store, opts.seedPath)
			if err != nil {
				return fmt.Errorf("seeding failed after %d rows: %w", n, err)
			}
			log.Printf("Seeding complete. rows=%d", n)
			return nil
		},
	}
	seedCmd.Flags().StringVar(&opts.seedPath, "file", config.Get("SEED_PATH", "data/seeds/deliveries.json"), "seed file path")

	root.AddCommand(initCmd, seedCmd)
	root.SetContext(context.Background())
	return root
}

func openDB(backend string) (*sql.DB, repositories.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case config.BackendPostgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, "", fmt.Errorf("DATABASE_URL is required")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, "", err
		}
		return conn, repositories.Postgres, nil

	case config.BackendSqlite:
		conn, err := db.OpenSqlite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			return nil, "", err
		}
		return conn, repositories.Sqlite, nil
	}

	return nil, "", fmt.Errorf("dbtool supports postgres and sqlite backends, got %q", backend)
}
