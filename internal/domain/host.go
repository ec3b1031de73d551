package domain

// ContentTypeSpec is the registration payload handed to the host runtime
// for one content type.
type ContentTypeSpec struct {
	Slug        string
	Label       string
	Description string
	Public      bool
	ShowUI      bool
	Supports    []string
}

// TaxonomySpec is the registration payload handed to the host runtime for
// one taxonomy. PostTypes is passed through verbatim; the host ignores
// bindings to content types it does not know.
type TaxonomySpec struct {
	Slug            string
	PostTypes       []string
	Label           string
	Description     string
	Public          bool
	ShowAdminColumn bool
}

// Spec builds the registration payload for this content type.
func (c ContentTypeDefinition) Spec() ContentTypeSpec {
	return ContentTypeSpec{
		Slug:        c.Slug,
		Label:       c.Name,
		Description: c.Description,
		Public:      true,
		ShowUI:      true,
		Supports:    []string{"title", "body", "thumbnail"},
	}
}

// Spec builds the registration payload for this taxonomy.
func (t TaxonomyDefinition) Spec() TaxonomySpec {
	return TaxonomySpec{
		Slug:            t.Slug,
		PostTypes:       t.PostTypes,
		Label:           t.Name,
		Description:     t.Description,
		Public:          true,
		ShowAdminColumn: true,
	}
}

// EditScreenExtension binds a meta-box to the edit screen of its content
// type under a derived identifier. The box is carried explicitly so the
// edit-screen composer can hand it straight to the form renderer.
type EditScreenExtension struct {
	ID  string
	Box MetaBoxDefinition
}

// Extension builds the edit-screen registration payload for this meta-box.
func (m MetaBoxDefinition) Extension() EditScreenExtension {
	return EditScreenExtension{ID: m.DerivedID(), Box: m}
}
