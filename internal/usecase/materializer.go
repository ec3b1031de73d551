package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("usecase")

// Materializer replays a registry snapshot into the host runtime. It runs
// once per process start and is idempotent; the host may restart the pass
// at any time.
type Materializer struct {
	host HostRuntime
}

func NewMaterializer(host HostRuntime) *Materializer {
	return &Materializer{host: host}
}

// Apply registers everything the registry holds, in dependency order:
// content types first, then taxonomies, then edit-screen extensions.
// A rejected registration is logged and skipped; the pass never fails as
// a whole, since each registration is independent and safe to repeat.
func (m *Materializer) Apply(ctx context.Context, reg *Registry) {
	ctx, span := tracer.Start(ctx, "Materializer.Apply")
	defer span.End()

	for _, ct := range reg.AllContentTypes() {
		err := m.host.RegisterContentType(ctx, ct.Spec())
		if err != nil {
			span.RecordError(err)
			slog.Warn("content type registration rejected",
				slog.String("slug", ct.Slug),
				slog.String("error", err.Error()),
			)
		}
	}

	// Ghost bindings are passed through untouched; the host ignores
	// content types it does not know.
	for _, tax := range reg.AllTaxonomies() {
		err := m.host.RegisterTaxonomy(ctx, tax.Spec())
		if err != nil {
			span.RecordError(err)
			slog.Warn("taxonomy registration rejected",
				slog.String("slug", tax.Slug),
				slog.String("error", err.Error()),
			)
		}
	}

	for _, box := range reg.AllMetaBoxes() {
		err := m.host.RegisterEditScreenExtension(ctx, box.PostType, box.Extension())
		if err != nil {
			span.RecordError(err)
			slog.Warn("meta box registration rejected",
				slog.String("id", box.DerivedID()),
				slog.String("postType", box.PostType),
				slog.String("error", err.Error()),
			)
		}
	}
}
