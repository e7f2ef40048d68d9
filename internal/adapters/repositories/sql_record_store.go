package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"milk-delivery-service/internal/domain"
	"milk-delivery-service/internal/platform/obs"
	"strings"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	Sqlite   Dialect = "sqlite"
)

// SQL-backed implementation of the RecordStore port.
// RowRefs are the table's primary key.
type SQLRecordStore struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewPostgresRecordStore(db *sql.DB) *SQLRecordStore {
	return &SQLRecordStore{DB: db, Dialect: Postgres}
}

func NewSqliteRecordStore(db *sql.DB) *SQLRecordStore {
	return &SQLRecordStore{DB: db, Dialect: Sqlite}
}

// rebind rewrites '?' placeholders to $N for postgres.
func (s *SQLRecordStore) rebind(q string) string {
	if s.Dialect != Postgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Return all delivery rows in insertion order.
func (s *SQLRecordStore) ListRecords(ctx context.Context) (_ []domain.StoredRecord, err error) {
	defer obs.Time(ctx, "sql.ListRecords")(&err)

	if s.DB == nil {
		return nil, errors.New("sql record store: DB is nil")
	}

	query := `
	SELECT
		id,
		user_name,
		address,
		milk,
		partner,
		quantity,
		delivery_date
	FROM deliveries
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list records: query deliveries table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StoredRecord, 0, 64)
	for rows.Next() {
		var r domain.StoredRecord
		if err := rows.Scan(&r.Ref, &r.User, &r.Address, &r.Milk, &r.Partner, &r.Quantity, &r.Date); err != nil {
			return nil, fmt.Errorf("list records: scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLRecordStore) AppendRecord(ctx context.Context, rec domain.DeliveryRecord) (err error) {
	defer obs.Time(ctx, "sql.AppendRecord")(&err)

	if s.DB == nil {
		return errors.New("sql record store: DB is nil")
	}

	query := s.rebind(`
	INSERT INTO deliveries (
		user_name,
		address,
		milk,
		partner,
		quantity,
		delivery_date
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if _, err := s.DB.ExecContext(ctx, query, rec.User, rec.Address, rec.Milk, rec.Partner, rec.Quantity, rec.Date); err != nil {
		return fmt.Errorf("append record: insert: %w", err)
	}

	return nil
}

func (s *SQLRecordStore) UpdateRecord(ctx context.Context, ref domain.RowRef, rec domain.DeliveryRecord) (err error) {
	defer obs.Time(ctx, "sql.UpdateRecord")(&err)

	if s.DB == nil {
		return errors.New("sql record store: DB is nil")
	}

	query := s.rebind(`
	UPDATE deliveries
	SET user_name = ?,
		address = ?,
		milk = ?,
		partner = ?,
		quantity = ?,
		delivery_date = ?
	WHERE id = ?;
	`)
	res, err := s.DB.ExecContext(ctx, query, rec.User, rec.Address, rec.Milk, rec.Partner, rec.Quantity, rec.Date, int64(ref))
	if err != nil {
		return fmt.Errorf("update record id=%d: %w", ref, err)
	}

	return expectOneRow(res, "update", ref)
}

func (s *SQLRecordStore) DeleteRecord(ctx context.Context, ref domain.RowRef) (err error) {
	defer obs.Time(ctx, "sql.DeleteRecord")(&err)

	if s.DB == nil {
		return errors.New("sql record store: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM deliveries WHERE id = ?;`), int64(ref))
	if err != nil {
		return fmt.Errorf("delete record id=%d: %w", ref, err)
	}

	return expectOneRow(res, "delete", ref)
}

func expectOneRow(res sql.Result, op string, ref domain.RowRef) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s record id=%d: rows affected: %w", op, ref, err)
	}
	if n != 1 {
		return fmt.Errorf("%s record id=%d: row no longer exists", op, ref)
	}
	return nil
}
