package domain

// FieldType enumerates the widget kinds a meta-box field can use.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

// ValidFieldType reports whether s names a recognized field type.
func ValidFieldType(s string) bool {
	switch FieldType(s) {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeCheckbox:
		return true
	}
	return false
}

// ContentTypeDefinition describes a custom content type an administrator
// created. Slug is the stable identifier content records reference.
type ContentTypeDefinition struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// TaxonomyDefinition describes a classification scheme bound to zero or
// more content types. PostTypes may reference slugs that were never
// defined; registration passes them through as-is.
type TaxonomyDefinition struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	PostTypes   []string `json:"postTypes"`
}

// FieldDefinition is a single labeled input within a meta-box. ID is the
// storage key for the field's value.
type FieldDefinition struct {
	Label string    `json:"label"`
	ID    string    `json:"id"`
	Type  FieldType `json:"type"`
}

// MetaBoxDefinition is an ordered group of custom fields attached to one
// content type. Field order is display order.
//
// Field IDs should be unique within a box; a duplicate ID means the later
// field's persisted value shadows the earlier one at render and save time.
type MetaBoxDefinition struct {
	Title    string            `json:"title"`
	PostType string            `json:"postType"`
	Fields   []FieldDefinition `json:"fields"`
}

// DerivedID is the identifier a meta-box registers under with the host.
// Two boxes whose titles slugify identically collide; the host keeps the
// last registration for a given id.
func (m MetaBoxDefinition) DerivedID() string {
	return Slugify(m.Title)
}
