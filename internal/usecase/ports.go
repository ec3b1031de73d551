package usecase

import (
	"context"

	"github.com/contentloom/loom/internal/domain"
)

// DefinitionRepository persists the three definition lists. Lists come
// back in submission order. Append is atomic with respect to concurrent
// appends of the same kind.
type DefinitionRepository interface {
	ListContentTypes(ctx context.Context) ([]domain.ContentTypeDefinition, error)
	ListTaxonomies(ctx context.Context) ([]domain.TaxonomyDefinition, error)
	ListMetaBoxes(ctx context.Context) ([]domain.MetaBoxDefinition, error)
	AppendContentType(ctx context.Context, ct domain.ContentTypeDefinition) error
	AppendTaxonomy(ctx context.Context, tax domain.TaxonomyDefinition) error
	AppendMetaBox(ctx context.Context, box domain.MetaBoxDefinition) error
	ResetAll(ctx context.Context) error
}

// FieldValueRepository stores per-record custom field values keyed by
// (recordID, fieldKey). Get returns domain.ErrNotFound for absent values.
type FieldValueRepository interface {
	Get(ctx context.Context, recordID, key string) (string, error)
	Set(ctx context.Context, recordID, key, value string) error
	Delete(ctx context.Context, recordID, key string) error
}

// RecordRepository persists content records.
type RecordRepository interface {
	Create(ctx context.Context, record domain.Record) error
	Get(ctx context.Context, id string) (domain.Record, error)
	ListByType(ctx context.Context, typeSlug string) ([]domain.Record, error)
}

// HostRuntime is the registration surface of the content-management host.
// Registrations live for one process lifecycle and are safe to repeat.
type HostRuntime interface {
	RegisterContentType(ctx context.Context, spec domain.ContentTypeSpec) error
	RegisterTaxonomy(ctx context.Context, spec domain.TaxonomySpec) error
	RegisterEditScreenExtension(ctx context.Context, contentType string, ext domain.EditScreenExtension) error
}

// NonceIssuer issues and verifies single-use anti-forgery tokens scoped
// to an action namespace.
type NonceIssuer interface {
	Issue(ctx context.Context, namespace string) (string, error)
	Verify(ctx context.Context, namespace, token string) (bool, error)
}

// RecordAuthorizer answers whether the acting principal may edit a record.
type RecordAuthorizer interface {
	CanEdit(ctx context.Context, recordID string) bool
}
