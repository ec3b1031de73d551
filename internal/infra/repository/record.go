package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/infra/database/models"
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(ctx context.Context, record domain.Record) error {
	return r.db.WithContext(ctx).Create(&models.Record{
		ID:    record.ID,
		Type:  record.Type,
		Title: record.Title,
		Body:  record.Body,
	}).Error
}

func (r *RecordRepository) Get(ctx context.Context, id string) (domain.Record, error) {
	var row models.Record
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Record{}, domain.NotFoundError{Resource: "record"}
	}
	if err != nil {
		return domain.Record{}, err
	}
	return toDomainRecord(row), nil
}

func (r *RecordRepository) ListByType(ctx context.Context, typeSlug string) ([]domain.Record, error) {
	var rows []models.Record
	err := r.db.WithContext(ctx).Where("type = ?", typeSlug).Order("c_date").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toDomainRecord(row))
	}
	return records, nil
}

func toDomainRecord(row models.Record) domain.Record {
	return domain.Record{
		ID:    row.ID,
		Type:  row.Type,
		Title: row.Title,
		Body:  row.Body,
		CDate: row.CDate,
	}
}
