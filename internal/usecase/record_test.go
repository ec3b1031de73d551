package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/contentloom/loom/internal/domain"
)

type memRecordRepo struct {
	records map[string]domain.Record
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: map[string]domain.Record{}}
}

func (m *memRecordRepo) Create(ctx context.Context, record domain.Record) error {
	m.records[record.ID] = record
	return nil
}

func (m *memRecordRepo) Get(ctx context.Context, id string) (domain.Record, error) {
	record, ok := m.records[id]
	if !ok {
		return domain.Record{}, domain.NotFoundError{Resource: "record"}
	}
	return record, nil
}

func (m *memRecordRepo) ListByType(ctx context.Context, typeSlug string) ([]domain.Record, error) {
	var records []domain.Record
	for _, record := range m.records {
		if record.Type == typeSlug {
			records = append(records, record)
		}
	}
	return records, nil
}

type stubTypes struct {
	registered map[string]bool
}

func (s *stubTypes) TypeRegistered(slug string) bool { return s.registered[slug] }

func TestRecordCreateRequiresRegisteredType(t *testing.T) {
	repo := newMemRecordRepo()
	uc := NewRecordUsecase(repo, &stubTypes{registered: map[string]bool{"recipe": true}})

	record, err := uc.Create(context.Background(), "recipe", "Carbonara", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if record.ID == "" || record.Type != "recipe" {
		t.Fatalf("unexpected record: %+v", record)
	}

	_, err = uc.Create(context.Background(), "ghost", "Nope", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unregistered type, got %v", err)
	}
}

func TestRecordCreateRequiresTitle(t *testing.T) {
	uc := NewRecordUsecase(newMemRecordRepo(), &stubTypes{registered: map[string]bool{"recipe": true}})

	_, err := uc.Create(context.Background(), "recipe", "   ", "")
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
