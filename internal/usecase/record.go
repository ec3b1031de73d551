package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentloom/loom/internal/domain"
)

// ContentTypeChecker reports whether a content type slug is registered
// with the host for the current process lifecycle.
type ContentTypeChecker interface {
	TypeRegistered(slug string) bool
}

// RecordUsecase creates and reads content records of registered types.
type RecordUsecase struct {
	repo  RecordRepository
	types ContentTypeChecker
}

func NewRecordUsecase(repo RecordRepository, types ContentTypeChecker) *RecordUsecase {
	return &RecordUsecase{repo: repo, types: types}
}

func (uc *RecordUsecase) Create(ctx context.Context, typeSlug, title, body string) (domain.Record, error) {
	if !uc.types.TypeRegistered(typeSlug) {
		return domain.Record{}, domain.NotFoundError{Resource: "content type"}
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Record{}, domain.ValidationError{Field: "title", Reason: "required"}
	}

	record := domain.Record{
		ID:    uuid.New().String(),
		Type:  typeSlug,
		Title: title,
		Body:  body,
		CDate: time.Now(),
	}
	if err := uc.repo.Create(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (uc *RecordUsecase) Get(ctx context.Context, id string) (domain.Record, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *RecordUsecase) ListByType(ctx context.Context, typeSlug string) ([]domain.Record, error) {
	return uc.repo.ListByType(ctx, typeSlug)
}
