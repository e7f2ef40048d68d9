package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSqlite   = "sqlite"
	BackendMemory   = "memory"
)

// Service-account credentials used to authenticate against Google Sheets.
type ServiceAccount struct {
	ProjectID     string
	PrivateKeyID  string
	PrivateKey    string
	ClientEmail   string
	ClientID      string
	ClientCertURL string
	AuthURI       string
	TokenURI      string
}

type Config struct {
	Port        string
	Backend     string
	SheetID     string
	Account     ServiceAccount
	DatabaseURL string
	DBPath      string
	SeedPath    string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the process environment and checks that the
// selected backend has what it needs.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "3000"),
		Backend:     strings.ToLower(strings.TrimSpace(Get("STORE_BACKEND", BackendSheets))),
		SheetID:     strings.TrimSpace(os.Getenv("GOOGLE_SHEET_ID")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/deliveries.json"),
		Account: ServiceAccount{
			ProjectID:     os.Getenv("GOOGLE_PROJECT_ID"),
			PrivateKeyID:  os.Getenv("GOOGLE_PRIVATE_KEY_ID"),
			PrivateKey:    expandKeyNewlines(os.Getenv("GOOGLE_PRIVATE_KEY")),
			ClientEmail:   os.Getenv("GOOGLE_CLIENT_EMAIL"),
			ClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
			ClientCertURL: os.Getenv("GOOGLE_CLIENT_CERT_URL"),
			AuthURI:       Get("GOOGLE_AUTH_URI", "https://accounts.google.com/o/oauth2/auth"),
			TokenURI:      Get("GOOGLE_TOKEN_URI", "https://oauth2.googleapis.com/token"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSheets:
		if c.SheetID == "" {
			return errors.New("GOOGLE_SHEET_ID is required for the sheets backend")
		}
		if strings.TrimSpace(c.Account.ClientEmail) == "" {
			return errors.New("GOOGLE_CLIENT_EMAIL is required for the sheets backend")
		}
		if strings.TrimSpace(c.Account.PrivateKey) == "" {
			return errors.New("GOOGLE_PRIVATE_KEY is required for the sheets backend")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendSqlite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("DB_PATH is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
	}

	return nil
}

// Private keys pasted into env files usually carry literal "\n" sequences.
func expandKeyNewlines(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
