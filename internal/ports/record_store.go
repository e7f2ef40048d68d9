package ports

import (
	"context"
	"milk-delivery-service/internal/domain"
)

// Port: a boundary for the external store holding delivery rows.
// Implementations re-read the store on every call and hold no cache.
type RecordStore interface {
	// Return every record currently in the store, in store order.
	ListRecords(ctx context.Context) ([]domain.StoredRecord, error)
	// Append a new record; the store decides its position.
	AppendRecord(ctx context.Context, rec domain.DeliveryRecord) error
	// Overwrite the record at ref with rec.
	UpdateRecord(ctx context.Context, ref domain.RowRef, rec domain.DeliveryRecord) error
	// Remove the record at ref.
	DeleteRecord(ctx context.Context, ref domain.RowRef) error
}
