package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/contentloom/loom/internal/domain"
)

// Registry is a read-only snapshot of the definition store, built once
// per materialization cycle and discarded afterwards. It is never mutated
// in place; a restart builds a fresh one.
type Registry struct {
	contentTypes []domain.ContentTypeDefinition
	taxonomies   []domain.TaxonomyDefinition
	metaBoxes    []domain.MetaBoxDefinition

	slugs  map[string]bool
	byType map[string][]domain.MetaBoxDefinition
}

// BuildRegistry loads all three definition lists and indexes them.
func BuildRegistry(ctx context.Context, repo DefinitionRepository) (*Registry, error) {
	contentTypes, err := repo.ListContentTypes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "BuildRegistry: loading content types")
	}
	taxonomies, err := repo.ListTaxonomies(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "BuildRegistry: loading taxonomies")
	}
	metaBoxes, err := repo.ListMetaBoxes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "BuildRegistry: loading meta boxes")
	}

	slugs := make(map[string]bool, len(contentTypes))
	for _, ct := range contentTypes {
		slugs[ct.Slug] = true
	}

	byType := make(map[string][]domain.MetaBoxDefinition)
	for _, box := range metaBoxes {
		byType[box.PostType] = append(byType[box.PostType], box)
	}

	return &Registry{
		contentTypes: contentTypes,
		taxonomies:   taxonomies,
		metaBoxes:    metaBoxes,
		slugs:        slugs,
		byType:       byType,
	}, nil
}

func (r *Registry) AllContentTypes() []domain.ContentTypeDefinition {
	return r.contentTypes
}

func (r *Registry) AllTaxonomies() []domain.TaxonomyDefinition {
	return r.taxonomies
}

func (r *Registry) AllMetaBoxes() []domain.MetaBoxDefinition {
	return r.metaBoxes
}

// MetaBoxesForContentType returns the meta-boxes attached to slug in
// stored order.
func (r *Registry) MetaBoxesForContentType(slug string) []domain.MetaBoxDefinition {
	return r.byType[slug]
}

func (r *Registry) ContentTypeExists(slug string) bool {
	return r.slugs[slug]
}
