package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/infra/database/models"
)

// FieldValueRepository stores per-record field values in postgres with a
// memcached read-through in front, the same way a host runtime caches
// record metadata. Cache failures are logged and ignored; postgres stays
// the source of truth.
type FieldValueRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewFieldValueRepository(db *gorm.DB, mc *memcache.Client) *FieldValueRepository {
	return &FieldValueRepository{db: db, mc: mc}
}

func cacheKey(recordID, key string) string {
	return "fv:" + recordID + ":" + key
}

func (r *FieldValueRepository) Get(ctx context.Context, recordID, key string) (string, error) {
	if item, err := r.mc.Get(cacheKey(recordID, key)); err == nil {
		return string(item.Value), nil
	}

	var row models.FieldValue
	err := r.db.WithContext(ctx).
		Where("record_id = ? AND field_key = ?", recordID, key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.NotFoundError{Resource: "field value"}
	}
	if err != nil {
		return "", err
	}

	if err := r.mc.Set(&memcache.Item{Key: cacheKey(recordID, key), Value: []byte(row.Value)}); err != nil {
		slog.Debug("field value cache set failed", slog.String("error", err.Error()))
	}

	return row.Value, nil
}

func (r *FieldValueRepository) Set(ctx context.Context, recordID, key, value string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}, {Name: "field_key"}},
		DoUpdates: clause.Assignments(map[string]any{"value": value}),
	}).Create(&models.FieldValue{
		RecordID: recordID,
		FieldKey: key,
		Value:    value,
	}).Error
	if err != nil {
		return err
	}

	r.invalidate(recordID, key)
	return nil
}

func (r *FieldValueRepository) Delete(ctx context.Context, recordID, key string) error {
	result := r.db.WithContext(ctx).
		Where("record_id = ? AND field_key = ?", recordID, key).
		Delete(&models.FieldValue{})
	if result.Error != nil {
		return result.Error
	}

	r.invalidate(recordID, key)

	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "field value"}
	}
	return nil
}

func (r *FieldValueRepository) invalidate(recordID, key string) {
	err := r.mc.Delete(cacheKey(recordID, key))
	if err != nil && err != memcache.ErrCacheMiss {
		slog.Debug("field value cache invalidation failed", slog.String("error", err.Error()))
	}
}
