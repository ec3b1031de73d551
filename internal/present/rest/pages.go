package rest

import (
	"html/template"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/contentloom/loom/internal/domain"
)

const pageHead = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Loom Content Manager</title></head>
<body>
<nav>
<a href="/admin">Dashboard</a>
<a href="/admin/content-types">Content Types</a>
<a href="/admin/taxonomies">Taxonomies</a>
<a href="/admin/meta-boxes">Meta Boxes</a>
</nav>
`

const pageFoot = `</body>
</html>
`

const dashboardTmpl = pageHead + `<h1>Content Manager</h1>
<ul class="stats">
<li>{{.CountContentTypes}} content types</li>
<li>{{.CountTaxonomies}} taxonomies</li>
<li>{{.CountMetaBoxes}} meta boxes</li>
</ul>
<h2>Recent Content Types</h2>
{{- if .RecentContentTypes}}
<ul>
{{- range .RecentContentTypes}}
<li>{{.Name}} <small>{{.Slug}}</small></li>
{{- end}}
</ul>
{{- else}}
<p>No content types created yet.</p>
{{- end}}
<h2>Recent Taxonomies</h2>
{{- if .RecentTaxonomies}}
<ul>
{{- range .RecentTaxonomies}}
<li>{{.Name}} <small>{{.Slug}}</small></li>
{{- end}}
</ul>
{{- else}}
<p>No taxonomies created yet.</p>
{{- end}}
<form method="POST" action="/admin/reset" onsubmit="return confirm('Delete all definitions?')">
<input type="hidden" name="nonce" value="{{.ResetNonce}}">
<button type="submit">Reset all definitions</button>
</form>
` + pageFoot

const contentTypesTmpl = pageHead + `<h1>Content Types</h1>
{{- range .Items}}
<div class="card">
<h3>{{.Name}}</h3>
<p>{{.Description}}</p>
<small>Slug: {{.Slug}}</small>
</div>
{{- end}}
<h2>Create New Content Type</h2>
<form method="POST" action="/admin/content-types">
<input type="hidden" name="nonce" value="{{.Nonce}}">
<input type="text" name="name" placeholder="Name" required>
<input type="text" name="slug" placeholder="Slug" required>
<textarea name="description" placeholder="Description"></textarea>
<button type="submit">Save</button>
</form>
` + pageFoot

const taxonomiesTmpl = pageHead + `<h1>Taxonomies</h1>
{{- range .Items}}
<div class="card">
<h3>{{.Name}}</h3>
<p>{{.Description}}</p>
<small>Slug: {{.Slug}} &middot; Post Types: {{join .PostTypes ", "}}</small>
</div>
{{- end}}
<h2>Create New Taxonomy</h2>
<form method="POST" action="/admin/taxonomies">
<input type="hidden" name="nonce" value="{{.Nonce}}">
<input type="text" name="name" placeholder="Name" required>
<input type="text" name="slug" placeholder="Slug" required>
<textarea name="description" placeholder="Description"></textarea>
<select name="postTypes[]" multiple>
{{- range .Types}}
<option value="{{.Slug}}">{{.Name}}</option>
{{- end}}
</select>
<button type="submit">Save</button>
</form>
` + pageFoot

const metaBoxesTmpl = pageHead + `<h1>Meta Boxes</h1>
{{- range .Items}}
<div class="card">
<h3>{{.Title}}</h3>
<p>Post Type: {{.PostType}}</p>
{{- range .Fields}}
<span class="badge">{{.Type}}</span>
{{- end}}
</div>
{{- end}}
<h2>Create New Meta Box</h2>
<form method="POST" action="/admin/meta-boxes" id="meta-box-form">
<input type="hidden" name="nonce" value="{{.Nonce}}">
<input type="text" name="title" placeholder="Title" required>
<select name="postType" required>
{{- range .Types}}
<option value="{{.Slug}}">{{.Name}}</option>
{{- end}}
</select>
<div id="field-rows">
{{.FieldRow}}
</div>
<button type="button" id="add-field" data-nonce="{{.FieldRowNonce}}">Add Field +</button>
<button type="submit">Save Meta Box</button>
</form>
<script>
document.getElementById('add-field').addEventListener('click', function () {
  var body = new URLSearchParams({nonce: this.dataset.nonce});
  fetch('/admin/meta-boxes/field-row', {method: 'POST', body: body})
    .then(function (res) { return res.text(); })
    .then(function (html) {
      document.getElementById('field-rows').insertAdjacentHTML('beforeend', html);
    });
});
document.getElementById('field-rows').addEventListener('click', function (e) {
  if (e.target.classList.contains('remove-field')) {
    e.target.closest('.field-row').remove();
  }
});
</script>
` + pageFoot

const editScreenTmpl = pageHead + `<h1>{{.Record.Title}}</h1>
<form method="POST" action="/types/{{.Record.Type}}/records/{{.Record.ID}}">
<input type="hidden" name="nonce" value="{{.Nonce}}">
{{.Boxes}}
<button type="submit">Save</button>
</form>
` + pageFoot

type dashboardView struct {
	CountContentTypes  int
	CountTaxonomies    int
	CountMetaBoxes     int
	RecentContentTypes []domain.ContentTypeDefinition
	RecentTaxonomies   []domain.TaxonomyDefinition
	ResetNonce         string
}

type contentTypesView struct {
	Items []domain.ContentTypeDefinition
	Nonce string
}

type taxonomiesView struct {
	Items []domain.TaxonomyDefinition
	Types []domain.ContentTypeDefinition
	Nonce string
}

type metaBoxesView struct {
	Items         []domain.MetaBoxDefinition
	Types         []domain.ContentTypeDefinition
	Nonce         string
	FieldRowNonce string
	FieldRow      template.HTML
}

type editScreenView struct {
	Record domain.Record
	Nonce  string
	Boxes  template.HTML
}

type pages struct {
	dashboard    *template.Template
	contentTypes *template.Template
	taxonomies   *template.Template
	metaBoxes    *template.Template
	editScreen   *template.Template
}

func newPages() *pages {
	funcs := template.FuncMap{"join": strings.Join}
	return &pages{
		dashboard:    template.Must(template.New("dashboard").Parse(dashboardTmpl)),
		contentTypes: template.Must(template.New("contentTypes").Parse(contentTypesTmpl)),
		taxonomies:   template.Must(template.New("taxonomies").Funcs(funcs).Parse(taxonomiesTmpl)),
		metaBoxes:    template.Must(template.New("metaBoxes").Parse(metaBoxesTmpl)),
		editScreen:   template.Must(template.New("editScreen").Parse(editScreenTmpl)),
	}
}

func renderPage(t *template.Template, view any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, view); err != nil {
		return "", pkgerrors.Wrapf(err, "rendering %s page", t.Name())
	}
	return b.String(), nil
}
