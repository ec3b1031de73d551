package domain

import "strings"

// Slugify lowercases s, collapses runs of non-alphanumeric characters to a
// single hyphen and strips leading/trailing hyphens. Idempotent:
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}

// FieldKey normalizes s into a safe storage key: lowercase, keeping only
// word characters and underscores. Everything else is stripped.
func FieldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeText reduces submitted input to plain text: tags removed,
// whitespace runs collapsed to single spaces, surrounding space trimmed.
func SanitizeText(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NewContentType validates and normalizes raw form input into a canonical
// ContentTypeDefinition. The slug falls back to the slugified name when
// the submitted slug normalizes to nothing.
func NewContentType(name, slug, description string) (ContentTypeDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ContentTypeDefinition{}, ValidationError{Field: "name", Reason: "required"}
	}

	normalized := Slugify(slug)
	if normalized == "" {
		normalized = Slugify(name)
	}
	if normalized == "" {
		return ContentTypeDefinition{}, ValidationError{Field: "slug", Reason: "required"}
	}

	return ContentTypeDefinition{
		Name:        name,
		Slug:        normalized,
		Description: strings.TrimSpace(description),
	}, nil
}

// NewTaxonomy validates and normalizes raw form input into a canonical
// TaxonomyDefinition. postTypes entries are trimmed and de-duplicated in
// order; an empty selection is allowed.
func NewTaxonomy(name, slug, description string, postTypes []string) (TaxonomyDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TaxonomyDefinition{}, ValidationError{Field: "name", Reason: "required"}
	}

	normalized := Slugify(slug)
	if normalized == "" {
		normalized = Slugify(name)
	}
	if normalized == "" {
		return TaxonomyDefinition{}, ValidationError{Field: "slug", Reason: "required"}
	}

	seen := make(map[string]bool)
	bound := []string{}
	for _, pt := range postTypes {
		pt = strings.TrimSpace(pt)
		if pt == "" || seen[pt] {
			continue
		}
		seen[pt] = true
		bound = append(bound, pt)
	}

	return TaxonomyDefinition{
		Name:        name,
		Slug:        normalized,
		Description: strings.TrimSpace(description),
		PostTypes:   bound,
	}, nil
}

// NewMetaBox validates and normalizes raw form input into a canonical
// MetaBoxDefinition. Field rows arrive as parallel-indexed slices; rows
// whose label or normalized id come out empty are dropped rather than
// rejected, and unrecognized types fall back to text.
func NewMetaBox(title, postType string, labels, ids, types []string) (MetaBoxDefinition, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return MetaBoxDefinition{}, ValidationError{Field: "title", Reason: "required"}
	}

	postType = strings.TrimSpace(postType)
	if postType == "" {
		return MetaBoxDefinition{}, ValidationError{Field: "postType", Reason: "required"}
	}

	fields := []FieldDefinition{}
	for i := range labels {
		label := strings.TrimSpace(labels[i])

		id := ""
		if i < len(ids) {
			id = FieldKey(ids[i])
		}
		if label == "" || id == "" {
			continue
		}

		ftype := FieldTypeText
		if i < len(types) && ValidFieldType(strings.TrimSpace(types[i])) {
			ftype = FieldType(strings.TrimSpace(types[i]))
		}

		fields = append(fields, FieldDefinition{Label: label, ID: id, Type: ftype})
	}

	return MetaBoxDefinition{Title: title, PostType: postType, Fields: fields}, nil
}
