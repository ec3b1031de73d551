package usecase

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/contentloom/loom/internal/domain"
)

type extRegistration struct {
	contentType string
	ext         domain.EditScreenExtension
}

type recordingHost struct {
	order     []string
	typeSpecs []domain.ContentTypeSpec
	taxSpecs  []domain.TaxonomySpec
	exts      []extRegistration
	rejectAll bool
}

func (h *recordingHost) RegisterContentType(ctx context.Context, spec domain.ContentTypeSpec) error {
	if h.rejectAll {
		return fmt.Errorf("rejected")
	}
	h.order = append(h.order, "type:"+spec.Slug)
	h.typeSpecs = append(h.typeSpecs, spec)
	return nil
}

func (h *recordingHost) RegisterTaxonomy(ctx context.Context, spec domain.TaxonomySpec) error {
	if h.rejectAll {
		return fmt.Errorf("rejected")
	}
	h.order = append(h.order, "tax:"+spec.Slug)
	h.taxSpecs = append(h.taxSpecs, spec)
	return nil
}

func (h *recordingHost) RegisterEditScreenExtension(ctx context.Context, contentType string, ext domain.EditScreenExtension) error {
	if h.rejectAll {
		return fmt.Errorf("rejected")
	}
	h.order = append(h.order, "ext:"+ext.ID)
	h.exts = append(h.exts, extRegistration{contentType: contentType, ext: ext})
	return nil
}

func buildTestRegistry(t *testing.T, repo *memDefRepo) *Registry {
	t.Helper()
	reg, err := BuildRegistry(context.Background(), repo)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return reg
}

func TestMaterializerRegistersInDependencyOrder(t *testing.T) {
	repo := &memDefRepo{
		contentTypes: []domain.ContentTypeDefinition{{Name: "Recipe", Slug: "recipe"}},
		taxonomies:   []domain.TaxonomyDefinition{{Name: "Cuisine", Slug: "cuisine", PostTypes: []string{"recipe"}}},
		metaBoxes:    []domain.MetaBoxDefinition{{Title: "Recipe Details", PostType: "recipe"}},
	}
	host := &recordingHost{}

	NewMaterializer(host).Apply(context.Background(), buildTestRegistry(t, repo))

	want := []string{"type:recipe", "tax:cuisine", "ext:recipe-details"}
	if !reflect.DeepEqual(host.order, want) {
		t.Fatalf("expected order %v, got %v", want, host.order)
	}

	spec := host.typeSpecs[0]
	if spec.Label != "Recipe" || !spec.Public || !spec.ShowUI {
		t.Fatalf("unexpected content type spec: %+v", spec)
	}
	if !reflect.DeepEqual(spec.Supports, []string{"title", "body", "thumbnail"}) {
		t.Fatalf("unexpected supports: %v", spec.Supports)
	}
}

func TestMaterializerPassesGhostBindingsThrough(t *testing.T) {
	repo := &memDefRepo{
		taxonomies: []domain.TaxonomyDefinition{
			{Name: "Genre", Slug: "genre", PostTypes: []string{"ghost"}},
		},
	}
	host := &recordingHost{}
	reg := buildTestRegistry(t, repo)

	NewMaterializer(host).Apply(context.Background(), reg)

	if reg.ContentTypeExists("ghost") {
		t.Fatalf("ghost should not exist in the registry")
	}
	if len(host.taxSpecs) != 1 {
		t.Fatalf("expected taxonomy registration to proceed")
	}
	if !reflect.DeepEqual(host.taxSpecs[0].PostTypes, []string{"ghost"}) {
		t.Fatalf("expected ghost binding passed through, got %v", host.taxSpecs[0].PostTypes)
	}
}

func TestMaterializerSwallowsRejections(t *testing.T) {
	repo := &memDefRepo{
		contentTypes: []domain.ContentTypeDefinition{{Name: "Recipe", Slug: "recipe"}},
		taxonomies:   []domain.TaxonomyDefinition{{Name: "Cuisine", Slug: "cuisine"}},
		metaBoxes:    []domain.MetaBoxDefinition{{Title: "Box", PostType: "recipe"}},
	}
	host := &recordingHost{rejectAll: true}

	// Must not panic or abort; every rejection is per-item.
	NewMaterializer(host).Apply(context.Background(), buildTestRegistry(t, repo))

	if len(host.typeSpecs) != 0 || len(host.taxSpecs) != 0 || len(host.exts) != 0 {
		t.Fatalf("nothing should have registered")
	}
}

func TestMaterializerRegistersCollidingDerivedIDs(t *testing.T) {
	repo := &memDefRepo{
		contentTypes: []domain.ContentTypeDefinition{{Name: "Recipe", Slug: "recipe"}},
		metaBoxes: []domain.MetaBoxDefinition{
			{Title: "My Box", PostType: "recipe"},
			{Title: "My Box!", PostType: "recipe"},
		},
	}
	host := &recordingHost{}

	NewMaterializer(host).Apply(context.Background(), buildTestRegistry(t, repo))

	if len(host.exts) != 2 {
		t.Fatalf("expected both colliding boxes registered, got %d", len(host.exts))
	}
	if host.exts[0].ext.ID != "my-box" || host.exts[1].ext.ID != "my-box" {
		t.Fatalf("expected both ids to collide on my-box")
	}
	if host.exts[1].ext.Box.Title != "My Box!" {
		t.Fatalf("expected the later registration to carry the later box")
	}
}
