package form

import (
	"html/template"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/contentloom/loom/internal/domain"
)

const metaBoxTmpl = `<div class="meta-box" id="meta-box-{{.ID}}">
<h3>{{.Title}}</h3>
{{- range .Fields}}
<div class="field">
<label for="{{.ID}}">{{.Label}}</label>
{{- if eq .Type "textarea"}}
<textarea id="{{.ID}}" name="{{.ID}}">{{.Value}}</textarea>
{{- else if eq .Type "select"}}
<select id="{{.ID}}" name="{{.ID}}"></select>
{{- else if eq .Type "checkbox"}}
<input type="checkbox" id="{{.ID}}" name="{{.ID}}" value="1">
{{- else}}
<input type="text" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}">
{{- end}}
</div>
{{- end}}
</div>
`

const fieldRowTmpl = `<div class="field-row">
<input type="text" name="fieldLabel[]" placeholder="Label">
<input type="text" name="fieldID[]" placeholder="ID">
<select name="fieldType[]">
<option value="text">Text</option>
<option value="textarea">Textarea</option>
<option value="select">Select</option>
<option value="checkbox">Checkbox</option>
</select>
<button type="button" class="remove-field">&times;</button>
</div>
`

type fieldView struct {
	Label string
	ID    string
	Type  string
	Value string
}

type metaBoxView struct {
	ID     string
	Title  string
	Fields []fieldView
}

// Renderer turns meta-box definitions into edit-screen markup. All
// user-supplied strings pass through html/template's contextual
// autoescaping.
//
// select and checkbox render a bare control with no options or checked
// state; those variants are declared but not fully implemented.
type Renderer struct {
	metaBox  *template.Template
	fieldRow *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		metaBox:  template.Must(template.New("metaBox").Parse(metaBoxTmpl)),
		fieldRow: template.Must(template.New("fieldRow").Parse(fieldRowTmpl)),
	}
}

// MetaBox renders the fields of one box in definition order, pre-filled
// from values. A field with no stored value renders empty.
func (r *Renderer) MetaBox(box domain.MetaBoxDefinition, values map[string]string) (string, error) {
	view := metaBoxView{
		ID:    box.DerivedID(),
		Title: box.Title,
	}
	for _, field := range box.Fields {
		view.Fields = append(view.Fields, fieldView{
			Label: field.Label,
			ID:    field.ID,
			Type:  string(field.Type),
			Value: values[field.ID],
		})
	}

	var b strings.Builder
	if err := r.metaBox.Execute(&b, view); err != nil {
		return "", pkgerrors.Wrapf(err, "rendering meta box %s", box.Title)
	}
	return b.String(), nil
}

// BlankFieldRow renders an empty field row for dynamic composition of
// the meta-box creation form.
func (r *Renderer) BlankFieldRow() (string, error) {
	var b strings.Builder
	if err := r.fieldRow.Execute(&b, nil); err != nil {
		return "", pkgerrors.Wrap(err, "rendering field row")
	}
	return b.String(), nil
}
