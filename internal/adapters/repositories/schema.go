package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"milk-delivery-service/internal/domain"
	"milk-delivery-service/internal/ports"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Create the deliveries table for the given dialect.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == Postgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDeliveriesQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS deliveries (
		%s,
		user_name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		milk TEXT NOT NULL DEFAULT '',
		partner TEXT NOT NULL DEFAULT '',
		quantity TEXT NOT NULL DEFAULT '',
		delivery_date TEXT NOT NULL DEFAULT ''
	);
	`, idColumn)

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_user_date
	ON deliveries(user_name, delivery_date);
	`

	statements := []string{
		createDeliveriesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// DeliverySeed fields accept numbers as well as strings in both formats.
type DeliverySeed struct {
	User     domain.Text `json:"user" yaml:"user"`
	Address  domain.Text `json:"address" yaml:"address"`
	Milk     domain.Text `json:"milk" yaml:"milk"`
	Partner  domain.Text `json:"partner" yaml:"partner"`
	Quantity domain.Text `json:"quantity" yaml:"quantity"`
	Date     domain.Text `json:"date" yaml:"date"`
}

// LoadSeeds reads delivery seeds from a JSON or YAML file (by extension).
func LoadSeeds(path string) ([]domain.DeliveryRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", path, err)
	}

	var data []DeliverySeed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("load seeds: parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("load seeds: parse json: %w", err)
		}
	}

	out := make([]domain.DeliveryRecord, 0, len(data))
	for i, item := range data {
		user := strings.TrimSpace(string(item.User))
		if user == "" {
			return nil, fmt.Errorf("load seeds: item at index %d: user cannot be empty", i+1)
		}
		out = append(out, domain.DeliveryRecord{
			User:     user,
			Address:  string(item.Address),
			Milk:     string(item.Milk),
			Partner:  string(item.Partner),
			Quantity: string(item.Quantity),
			Date:     string(item.Date),
		})
	}

	return out, nil
}

// Seed appends every record from the seed file to the store.
func Seed(ctx context.Context, store ports.RecordStore, path string) (int, error) {
	records, err := LoadSeeds(path)
	if err != nil {
		return 0, err
	}

	for i, rec := range records {
		if err := store.AppendRecord(ctx, rec); err != nil {
			return i, fmt.Errorf("seed deliveries: append user=%q: %w", rec.User, err)
		}
	}

	return len(records), nil
}
