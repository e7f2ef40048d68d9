package services

import (
	"context"
	"fmt"
	"milk-delivery-service/internal/domain"
	"milk-delivery-service/internal/ports"
)

// Identifies the row an update or delete applies to.
type RowSelector struct {
	User       string
	TargetDate string
}

type UpdateDeliveryRequest struct {
	RowSelector
	Patch domain.RecordPatch
}

// ListDeliveries returns every delivery record in store order.
func ListDeliveries(ctx context.Context, store ports.RecordStore) ([]domain.DeliveryRecord, error) {
	rows, err := store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	out := make([]domain.DeliveryRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.DeliveryRecord)
	}
	return out, nil
}

// CreateDelivery appends rec as-is; no field is required.
func CreateDelivery(ctx context.Context, store ports.RecordStore, rec domain.DeliveryRecord) error {
	if err := store.AppendRecord(ctx, rec); err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

// UpdateDelivery resolves the target row once, applies the patch and persists it.
// The returned record is the row as written.
func UpdateDelivery(
	ctx context.Context,
	store ports.RecordStore,
	req UpdateDeliveryRequest,
) (domain.DeliveryRecord, error) {
	rows, err := store.ListRecords(ctx)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("update delivery: list rows: %w", err)
	}

	target, err := Resolve(rows, req.User, req.TargetDate)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("update delivery: %w", err)
	}

	updated := target.DeliveryRecord
	req.Patch.Apply(&updated)

	if err := store.UpdateRecord(ctx, target.Ref, updated); err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("update delivery: save row %d: %w", target.Ref, err)
	}

	return updated, nil
}

// DeleteDelivery resolves the target row and removes it, returning the
// field values it held before removal.
func DeleteDelivery(
	ctx context.Context,
	store ports.RecordStore,
	sel RowSelector,
) (domain.DeliveryRecord, error) {
	rows, err := store.ListRecords(ctx)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("delete delivery: list rows: %w", err)
	}

	target, err := Resolve(rows, sel.User, sel.TargetDate)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("delete delivery: %w", err)
	}

	snapshot := target.DeliveryRecord

	if err := store.DeleteRecord(ctx, target.Ref); err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("delete delivery: remove row %d: %w", target.Ref, err)
	}

	return snapshot, nil
}
