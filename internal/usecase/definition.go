package usecase

import (
	"context"

	"github.com/contentloom/loom/internal/domain"
)

// DefinitionUsecase owns the lifecycle of definition records: validate,
// normalize, append. Definitions are append-only; the only removal path
// is ResetAll.
type DefinitionUsecase struct {
	repo DefinitionRepository
}

func NewDefinitionUsecase(repo DefinitionRepository) *DefinitionUsecase {
	return &DefinitionUsecase{repo: repo}
}

func (uc *DefinitionUsecase) CreateContentType(ctx context.Context, name, slug, description string) (domain.ContentTypeDefinition, error) {
	ct, err := domain.NewContentType(name, slug, description)
	if err != nil {
		return domain.ContentTypeDefinition{}, err
	}
	if err := uc.repo.AppendContentType(ctx, ct); err != nil {
		return domain.ContentTypeDefinition{}, err
	}
	return ct, nil
}

func (uc *DefinitionUsecase) CreateTaxonomy(ctx context.Context, name, slug, description string, postTypes []string) (domain.TaxonomyDefinition, error) {
	tax, err := domain.NewTaxonomy(name, slug, description, postTypes)
	if err != nil {
		return domain.TaxonomyDefinition{}, err
	}
	if err := uc.repo.AppendTaxonomy(ctx, tax); err != nil {
		return domain.TaxonomyDefinition{}, err
	}
	return tax, nil
}

func (uc *DefinitionUsecase) CreateMetaBox(ctx context.Context, title, postType string, labels, ids, types []string) (domain.MetaBoxDefinition, error) {
	box, err := domain.NewMetaBox(title, postType, labels, ids, types)
	if err != nil {
		return domain.MetaBoxDefinition{}, err
	}
	if err := uc.repo.AppendMetaBox(ctx, box); err != nil {
		return domain.MetaBoxDefinition{}, err
	}
	return box, nil
}

func (uc *DefinitionUsecase) ContentTypes(ctx context.Context) ([]domain.ContentTypeDefinition, error) {
	return uc.repo.ListContentTypes(ctx)
}

func (uc *DefinitionUsecase) Taxonomies(ctx context.Context) ([]domain.TaxonomyDefinition, error) {
	return uc.repo.ListTaxonomies(ctx)
}

func (uc *DefinitionUsecase) MetaBoxes(ctx context.Context) ([]domain.MetaBoxDefinition, error) {
	return uc.repo.ListMetaBoxes(ctx)
}

// ResetAll wipes every definition list. This is the uninstall path.
func (uc *DefinitionUsecase) ResetAll(ctx context.Context) error {
	return uc.repo.ResetAll(ctx)
}
