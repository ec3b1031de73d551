package host

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/present/form"
)

// ValueSource loads the current field values of a meta-box for a record.
type ValueSource interface {
	CurrentValues(ctx context.Context, box domain.MetaBoxDefinition, recordID string) (map[string]string, error)
}

// Reserved slugs the runtime keeps for its own built-in types.
var reservedSlugs = map[string]bool{
	"post": true,
	"page": true,
}

type registeredExt struct {
	ext domain.EditScreenExtension
	seq int
}

// Host is the embedded content-management runtime. Registrations live in
// memory for one process lifecycle; Reset clears them so a materialization
// pass can be replayed. Stored content and field values live behind the
// repositories, not here.
type Host struct {
	mu         sync.RWMutex
	seq        int
	types      map[string]domain.ContentTypeSpec
	taxonomies map[string]domain.TaxonomySpec
	extensions map[string][]registeredExt
	// winners maps a derived extension id to the seq of its newest
	// registration; older registrations under the same id go dark.
	winners map[string]int

	values   ValueSource
	renderer *form.Renderer
}

func New(values ValueSource, renderer *form.Renderer) *Host {
	h := &Host{values: values, renderer: renderer}
	h.Reset()
	return h
}

// Reset drops every registration. Call before replaying a pass.
func (h *Host) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.types = make(map[string]domain.ContentTypeSpec)
	h.taxonomies = make(map[string]domain.TaxonomySpec)
	h.extensions = make(map[string][]registeredExt)
	h.winners = make(map[string]int)
}

func (h *Host) RegisterContentType(ctx context.Context, spec domain.ContentTypeSpec) error {
	if spec.Slug == "" {
		return fmt.Errorf("content type slug is empty")
	}
	if reservedSlugs[spec.Slug] {
		return fmt.Errorf("content type slug %q is reserved", spec.Slug)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.types[spec.Slug] = spec
	return nil
}

// RegisterTaxonomy accepts bindings to unknown content types without
// complaint; they simply never surface anywhere.
func (h *Host) RegisterTaxonomy(ctx context.Context, spec domain.TaxonomySpec) error {
	if spec.Slug == "" {
		return fmt.Errorf("taxonomy slug is empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.taxonomies[spec.Slug] = spec
	return nil
}

func (h *Host) RegisterEditScreenExtension(ctx context.Context, contentType string, ext domain.EditScreenExtension) error {
	if ext.ID == "" {
		return fmt.Errorf("extension id is empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.extensions[contentType] = append(h.extensions[contentType], registeredExt{ext: ext, seq: h.seq})
	h.winners[ext.ID] = h.seq
	return nil
}

// TypeRegistered reports whether a content type is live this cycle.
func (h *Host) TypeRegistered(slug string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.types[slug]
	return ok
}

// TaxonomyRegistered reports whether a taxonomy is live this cycle.
func (h *Host) TaxonomyRegistered(slug string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.taxonomies[slug]
	return ok
}

// Taxonomy returns a registered taxonomy spec.
func (h *Host) Taxonomy(slug string) (domain.TaxonomySpec, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	spec, ok := h.taxonomies[slug]
	return spec, ok
}

// MetaBoxesFor returns the live meta-boxes of a content type in
// registration order, with shadowed duplicate-id registrations dropped.
func (h *Host) MetaBoxesFor(typeSlug string) []domain.MetaBoxDefinition {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var boxes []domain.MetaBoxDefinition
	for _, re := range h.extensions[typeSlug] {
		if h.winners[re.ext.ID] == re.seq {
			boxes = append(boxes, re.ext.Box)
		}
	}
	return boxes
}

// ComposeEditScreen renders every meta-box bound to a content type, in
// registration order, for the given record. When two registrations share
// a derived id only the newest one renders.
func (h *Host) ComposeEditScreen(ctx context.Context, typeSlug, recordID string) (string, error) {
	h.mu.RLock()
	if _, ok := h.types[typeSlug]; !ok {
		h.mu.RUnlock()
		return "", domain.NotFoundError{Resource: "content type"}
	}
	var boxes []domain.MetaBoxDefinition
	for _, re := range h.extensions[typeSlug] {
		if h.winners[re.ext.ID] == re.seq {
			boxes = append(boxes, re.ext.Box)
		}
	}
	h.mu.RUnlock()

	var b strings.Builder
	for _, box := range boxes {
		values, err := h.values.CurrentValues(ctx, box, recordID)
		if err != nil {
			return "", err
		}

		markup, err := h.renderer.MetaBox(box, values)
		if err != nil {
			return "", err
		}
		b.WriteString(markup)
	}

	return b.String(), nil
}
