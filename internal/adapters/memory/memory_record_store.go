package memory

import (
	"context"
	"fmt"
	"milk-delivery-service/internal/domain"
	"sync"
)

// In-memory implementation of the RecordStore port.
// Refs are monotonically assigned and never reused, so a stale ref from a
// deleted row fails instead of hitting its neighbour.
type MemoryRecordStore struct {
	mu      sync.Mutex
	nextRef domain.RowRef
	rows    []domain.StoredRecord

	// Optional injected failures, checked before each operation.
	ListErr   error
	AppendErr error
	UpdateErr error
	DeleteErr error
}

func NewMemoryRecordStore(seed ...domain.DeliveryRecord) *MemoryRecordStore {
	s := &MemoryRecordStore{nextRef: 1}
	for _, r := range seed {
		s.appendLocked(r)
	}
	return s
}

func (s *MemoryRecordStore) ListRecords(ctx context.Context) ([]domain.StoredRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}

	out := make([]domain.StoredRecord, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *MemoryRecordStore) AppendRecord(ctx context.Context, rec domain.DeliveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AppendErr != nil {
		return s.AppendErr
	}

	s.appendLocked(rec)
	return nil
}

func (s *MemoryRecordStore) UpdateRecord(ctx context.Context, ref domain.RowRef, rec domain.DeliveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	i, err := s.indexLocked(ref)
	if err != nil {
		return fmt.Errorf("memory update: %w", err)
	}
	s.rows[i].DeliveryRecord = rec
	return nil
}

func (s *MemoryRecordStore) DeleteRecord(ctx context.Context, ref domain.RowRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	i, err := s.indexLocked(ref)
	if err != nil {
		return fmt.Errorf("memory delete: %w", err)
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

func (s *MemoryRecordStore) appendLocked(rec domain.DeliveryRecord) {
	s.rows = append(s.rows, domain.StoredRecord{Ref: s.nextRef, DeliveryRecord: rec})
	s.nextRef++
}

func (s *MemoryRecordStore) indexLocked(ref domain.RowRef) (int, error) {
	for i, r := range s.rows {
		if r.Ref == ref {
			return i, nil
		}
	}
	return -1, fmt.Errorf("row %d does not exist", ref)
}
