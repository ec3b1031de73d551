package host

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/present/form"
)

type stubValues struct {
	data map[string]string
}

func (s *stubValues) CurrentValues(ctx context.Context, box domain.MetaBoxDefinition, recordID string) (map[string]string, error) {
	values := map[string]string{}
	for _, field := range box.Fields {
		if value, ok := s.data[field.ID]; ok {
			values[field.ID] = value
		}
	}
	return values, nil
}

func newTestHost(values map[string]string) *Host {
	return New(&stubValues{data: values}, form.NewRenderer())
}

func TestRegisterContentTypeRejectsReservedSlug(t *testing.T) {
	h := newTestHost(nil)

	err := h.RegisterContentType(context.Background(), domain.ContentTypeSpec{Slug: "post"})
	if err == nil {
		t.Fatalf("expected reserved slug rejection")
	}

	err = h.RegisterContentType(context.Background(), domain.ContentTypeSpec{Slug: ""})
	if err == nil {
		t.Fatalf("expected empty slug rejection")
	}

	if err := h.RegisterContentType(context.Background(), domain.ContentTypeSpec{Slug: "recipe"}); err != nil {
		t.Fatalf("valid registration failed: %v", err)
	}
	if !h.TypeRegistered("recipe") {
		t.Fatalf("expected recipe registered")
	}
}

func TestRegisterTaxonomyKeepsUnknownBindings(t *testing.T) {
	h := newTestHost(nil)

	err := h.RegisterTaxonomy(context.Background(), domain.TaxonomySpec{
		Slug:      "genre",
		PostTypes: []string{"ghost"},
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	spec, ok := h.Taxonomy("genre")
	if !ok {
		t.Fatalf("expected taxonomy registered")
	}
	if len(spec.PostTypes) != 1 || spec.PostTypes[0] != "ghost" {
		t.Fatalf("expected ghost binding preserved, got %v", spec.PostTypes)
	}
}

func TestComposeEditScreenRendersBoundBoxes(t *testing.T) {
	h := newTestHost(map[string]string{"prep_time": "45"})
	ctx := context.Background()

	if err := h.RegisterContentType(ctx, domain.ContentTypeSpec{Slug: "recipe"}); err != nil {
		t.Fatalf("register type failed: %v", err)
	}

	box := domain.MetaBoxDefinition{
		Title:    "Recipe Details",
		PostType: "recipe",
		Fields:   []domain.FieldDefinition{{Label: "Prep Time", ID: "prep_time", Type: domain.FieldTypeText}},
	}
	if err := h.RegisterEditScreenExtension(ctx, "recipe", box.Extension()); err != nil {
		t.Fatalf("register extension failed: %v", err)
	}

	markup, err := h.ComposeEditScreen(ctx, "recipe", "r1")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if !strings.Contains(markup, `value="45"`) {
		t.Fatalf("expected stored value rendered, got:\n%s", markup)
	}
}

func TestComposeEditScreenUnknownType(t *testing.T) {
	h := newTestHost(nil)

	_, err := h.ComposeEditScreen(context.Background(), "ghost", "r1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCollidingExtensionIDsLastWins(t *testing.T) {
	h := newTestHost(nil)
	ctx := context.Background()

	if err := h.RegisterContentType(ctx, domain.ContentTypeSpec{Slug: "recipe"}); err != nil {
		t.Fatalf("register type failed: %v", err)
	}

	first := domain.MetaBoxDefinition{
		Title:    "My Box",
		PostType: "recipe",
		Fields:   []domain.FieldDefinition{{Label: "First", ID: "first_field", Type: domain.FieldTypeText}},
	}
	second := domain.MetaBoxDefinition{
		Title:    "My Box!",
		PostType: "recipe",
		Fields:   []domain.FieldDefinition{{Label: "Second", ID: "second_field", Type: domain.FieldTypeText}},
	}

	if err := h.RegisterEditScreenExtension(ctx, "recipe", first.Extension()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := h.RegisterEditScreenExtension(ctx, "recipe", second.Extension()); err != nil {
		t.Fatalf("second registration failed: %v", err)
	}

	markup, err := h.ComposeEditScreen(ctx, "recipe", "r1")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if strings.Contains(markup, "first_field") {
		t.Fatalf("shadowed registration still renders:\n%s", markup)
	}
	if !strings.Contains(markup, "second_field") {
		t.Fatalf("winning registration missing:\n%s", markup)
	}

	boxes := h.MetaBoxesFor("recipe")
	if len(boxes) != 1 || boxes[0].Title != "My Box!" {
		t.Fatalf("expected only the later box live, got %+v", boxes)
	}
}

func TestResetClearsRegistrations(t *testing.T) {
	h := newTestHost(nil)
	ctx := context.Background()

	if err := h.RegisterContentType(ctx, domain.ContentTypeSpec{Slug: "recipe"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	h.Reset()

	if h.TypeRegistered("recipe") {
		t.Fatalf("expected registrations cleared")
	}
}
