package repository

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/infra/database/models"
)

// DefinitionRepository stores the three definition lists in postgres.
// Appends run in a transaction with a uniqueness re-check, so concurrent
// admin submissions cannot lose updates or double a slug.
type DefinitionRepository struct {
	db *gorm.DB
}

func NewDefinitionRepository(db *gorm.DB) *DefinitionRepository {
	return &DefinitionRepository{db: db}
}

func (r *DefinitionRepository) ListContentTypes(ctx context.Context) ([]domain.ContentTypeDefinition, error) {
	var rows []models.ContentType
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := make([]domain.ContentTypeDefinition, 0, len(rows))
	for _, row := range rows {
		list = append(list, domain.ContentTypeDefinition{
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
		})
	}
	return list, nil
}

func (r *DefinitionRepository) ListTaxonomies(ctx context.Context) ([]domain.TaxonomyDefinition, error) {
	var rows []models.Taxonomy
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := make([]domain.TaxonomyDefinition, 0, len(rows))
	for _, row := range rows {
		var postTypes []string
		if row.PostTypes != "" {
			if err := json.Unmarshal([]byte(row.PostTypes), &postTypes); err != nil {
				return nil, pkgerrors.Wrapf(err, "taxonomy %s: decoding post types", row.Slug)
			}
		}
		list = append(list, domain.TaxonomyDefinition{
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description,
			PostTypes:   postTypes,
		})
	}
	return list, nil
}

func (r *DefinitionRepository) ListMetaBoxes(ctx context.Context) ([]domain.MetaBoxDefinition, error) {
	var rows []models.MetaBox
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := make([]domain.MetaBoxDefinition, 0, len(rows))
	for _, row := range rows {
		var fields []domain.FieldDefinition
		if row.Fields != "" {
			if err := json.Unmarshal([]byte(row.Fields), &fields); err != nil {
				return nil, pkgerrors.Wrapf(err, "meta box %s: decoding fields", row.Title)
			}
		}
		list = append(list, domain.MetaBoxDefinition{
			Title:    row.Title,
			PostType: row.PostType,
			Fields:   fields,
		})
	}
	return list, nil
}

func (r *DefinitionRepository) AppendContentType(ctx context.Context, ct domain.ContentTypeDefinition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.ContentType{}).Where("slug = ?", ct.Slug).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ValidationError{Field: "slug", Reason: "already in use"}
		}

		return tx.Create(&models.ContentType{
			Name:        ct.Name,
			Slug:        ct.Slug,
			Description: ct.Description,
		}).Error
	})
}

func (r *DefinitionRepository) AppendTaxonomy(ctx context.Context, tax domain.TaxonomyDefinition) error {
	postTypes, err := json.Marshal(tax.PostTypes)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Taxonomy{}).Where("slug = ?", tax.Slug).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ValidationError{Field: "slug", Reason: "already in use"}
		}

		return tx.Create(&models.Taxonomy{
			Name:        tax.Name,
			Slug:        tax.Slug,
			Description: tax.Description,
			PostTypes:   string(postTypes),
		}).Error
	})
}

func (r *DefinitionRepository) AppendMetaBox(ctx context.Context, box domain.MetaBoxDefinition) error {
	fields, err := json.Marshal(box.Fields)
	if err != nil {
		return err
	}

	// Meta box titles are not unique; collisions between derived ids are
	// tolerated at registration time.
	return r.db.WithContext(ctx).Create(&models.MetaBox{
		Title:    box.Title,
		PostType: box.PostType,
		Fields:   string(fields),
	}).Error
}

// ResetAll wipes every definition list. Content records and field values
// are left alone.
func (r *DefinitionRepository) ResetAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ContentType{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Taxonomy{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.MetaBox{}).Error
	})
}
