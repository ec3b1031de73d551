package rest

import (
	"errors"
	"html/template"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/labstack/echo/v4"

	"github.com/contentloom/loom/internal/domain"
	"github.com/contentloom/loom/internal/infra/host"
	"github.com/contentloom/loom/internal/present/form"
	"github.com/contentloom/loom/internal/present/rest/presenter"
	"github.com/contentloom/loom/internal/usecase"
)

const dashboardCacheKey = "dashboard"

type Handler struct {
	defs     *usecase.DefinitionUsecase
	fields   *usecase.FieldValueUsecase
	records  *usecase.RecordUsecase
	host     *host.Host
	renderer *form.Renderer
	nonces   usecase.NonceIssuer
	pages    *pages
	stats    *gocache.Cache
}

func NewHandler(
	defs *usecase.DefinitionUsecase,
	fields *usecase.FieldValueUsecase,
	records *usecase.RecordUsecase,
	hostRuntime *host.Host,
	renderer *form.Renderer,
	nonces usecase.NonceIssuer,
) *Handler {
	return &Handler{
		defs:     defs,
		fields:   fields,
		records:  records,
		host:     hostRuntime,
		renderer: renderer,
		nonces:   nonces,
		pages:    newPages(),
		stats:    gocache.New(30*time.Second, time.Minute),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, admin echo.MiddlewareFunc) {
	g := e.Group("/admin", admin)
	g.GET("", h.handleDashboard)
	g.GET("/content-types", h.handleContentTypePage)
	g.POST("/content-types", h.handleSaveContentType)
	g.GET("/taxonomies", h.handleTaxonomyPage)
	g.POST("/taxonomies", h.handleSaveTaxonomy)
	g.GET("/meta-boxes", h.handleMetaBoxPage)
	g.POST("/meta-boxes", h.handleSaveMetaBox)
	g.POST("/meta-boxes/field-row", h.handleAddFieldRow)
	g.POST("/reset", h.handleReset)

	t := e.Group("/types", admin)
	t.POST("/:type/records", h.handleCreateRecord)
	t.GET("/:type/records/:id/edit", h.handleEditScreen)
	t.POST("/:type/records/:id", h.handleSaveRecord)
}

// respondError maps domain errors onto responses: validation surfaces to
// the form, denials stay generic.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrPermissionDenied):
		return presenter.Forbidden(c)
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	default:
		return presenter.InternalError(c, err)
	}
}

func (h *Handler) verifyNonce(c echo.Context, namespace string) (bool, error) {
	return h.nonces.Verify(c.Request().Context(), namespace, c.FormValue("nonce"))
}

func (h *Handler) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	var view dashboardView
	if cached, found := h.stats.Get(dashboardCacheKey); found {
		view = cached.(dashboardView)
	} else {
		contentTypes, err := h.defs.ContentTypes(ctx)
		if err != nil {
			return presenter.InternalError(c, err)
		}
		taxonomies, err := h.defs.Taxonomies(ctx)
		if err != nil {
			return presenter.InternalError(c, err)
		}
		metaBoxes, err := h.defs.MetaBoxes(ctx)
		if err != nil {
			return presenter.InternalError(c, err)
		}

		view = dashboardView{
			CountContentTypes:  len(contentTypes),
			CountTaxonomies:    len(taxonomies),
			CountMetaBoxes:     len(metaBoxes),
			RecentContentTypes: lastN(contentTypes, 3),
			RecentTaxonomies:   lastN(taxonomies, 3),
		}
		h.stats.Set(dashboardCacheKey, view, gocache.DefaultExpiration)
	}

	nonce, err := h.nonces.Issue(ctx, domain.NonceReset)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	view.ResetNonce = nonce

	markup, err := renderPage(h.pages.dashboard, view)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.HTML(c, markup)
}

func (h *Handler) handleContentTypePage(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.defs.ContentTypes(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	nonce, err := h.nonces.Issue(ctx, domain.NonceContentType)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	markup, err := renderPage(h.pages.contentTypes, contentTypesView{Items: items, Nonce: nonce})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.HTML(c, markup)
}

func (h *Handler) handleSaveContentType(c echo.Context) error {
	ctx := c.Request().Context()

	ok, err := h.verifyNonce(c, domain.NonceContentType)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	if !ok {
		return presenter.Forbidden(c)
	}

	_, err = h.defs.CreateContentType(ctx,
		c.FormValue("name"),
		c.FormValue("slug"),
		c.FormValue("description"),
	)
	if err != nil {
		return respondError(c, err)
	}

	h.stats.Delete(dashboardCacheKey)
	return presenter.Redirect(c, "/admin/content-types")
}

func (h *Handler) handleTaxonomyPage(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.defs.Taxonomies(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	types, err := h.defs.ContentTypes(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	nonce, err := h.nonces.Issue(ctx, domain.NonceTaxonomy)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	markup, err := renderPage(h.pages.taxonomies, taxonomiesView{Items: items, Types: types, Nonce: nonce})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.HTML(c, markup)
}

func (h *Handler) handleSaveTaxonomy(c echo.Context) error {
	ctx := c.Request().Context()

	ok, err := h.verifyNonce(c, domain.NonceTaxonomy)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	if !ok {
		return presenter.Forbidden(c)
	}

	params, err := c.FormParams()
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	_, err = h.defs.CreateTaxonomy(ctx,
		c.FormValue("name"),
		c.FormValue("slug"),
		c.FormValue("description"),
		params["postTypes[]"],
	)
	if err != nil {
		return respondError(c, err)
	}

	h.stats.Delete(dashboardCacheKey)
	return presenter.Redirect(c, "/admin/taxonomies")
}

func (h *Handler) handleMetaBoxPage(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.defs.MetaBoxes(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	types, err := h.defs.ContentTypes(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	nonce, err := h.nonces.Issue(ctx, domain.NonceMetaBox)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	rowNonce, err := h.nonces.Issue(ctx, domain.NonceFieldRow)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	row, err := h.renderer.BlankFieldRow()
	if err != nil {
		return presenter.InternalError(c, err)
	}

	markup, err := renderPage(h.pages.metaBoxes, metaBoxesView{
		Items:         items,
		Types:         types,
		Nonce:         nonce,
		FieldRowNonce: rowNonce,
		FieldRow:      template.HTML(row),
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.HTML(c, markup)
}

func (h *Handler) handleSaveMetaBox(c echo.Context) error {
	ctx := c.Request().Context()

	ok, err := h.verifyNonce(c, domain.NonceMetaBox)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	if !ok {
		return presenter.Forbidden(c)
	}

	params, err := c.FormParams()
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	_, err = h.defs.CreateMetaBox(ctx,
		c.FormValue("title"),
		c.FormValue("postType"),
		params["fieldLabel[]"],
		params["fieldID[]"],
		params["fieldType[]"],
	)
	if err != nil {
		return respondError(c, err)
	}

	h.stats.Delete(dashboardCacheKey)
	return presenter.Redirect(c, "/admin/meta-boxes")
}

// handleAddFieldRow returns one blank field-row fragment for client-side
// form composition. It never touches the store.
func (h *Handler) handleAddFieldRow(c echo.Context) error {
	ok, err := h.verifyNonce(c, domain.NonceFieldRow)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	if !ok {
		return presenter.Forbidden(c)
	}

	row, err := h.renderer.BlankFieldRow()
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.HTML(c, row)
}

func (h *Handler) handleReset(c echo.Context) error {
	ctx := c.Request().Context()

	ok, err := h.verifyNonce(c, domain.NonceReset)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	if !ok {
		return presenter.Forbidden(c)
	}

	if err := h.defs.ResetAll(ctx); err != nil {
		return presenter.InternalError(c, err)
	}

	h.stats.Delete(dashboardCacheKey)
	return presenter.Redirect(c, "/admin")
}

func (h *Handler) handleCreateRecord(c echo.Context) error {
	ctx := c.Request().Context()

	record, err := h.records.Create(ctx,
		c.Param("type"),
		c.FormValue("title"),
		c.FormValue("body"),
	)
	if err != nil {
		return respondError(c, err)
	}

	return presenter.Redirect(c, "/types/"+record.Type+"/records/"+record.ID+"/edit")
}

func (h *Handler) handleEditScreen(c echo.Context) error {
	ctx := c.Request().Context()

	record, err := h.records.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if record.Type != c.Param("type") {
		return presenter.NotFound(c, "record not found")
	}

	boxes, err := h.host.ComposeEditScreen(ctx, record.Type, record.ID)
	if err != nil {
		return respondError(c, err)
	}

	nonce, err := h.nonces.Issue(ctx, domain.NonceRecordSave)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	markup, err := renderPage(h.pages.editScreen, editScreenView{
		Record: record,
		Nonce:  nonce,
		Boxes:  template.HTML(boxes),
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.HTML(c, markup)
}

func (h *Handler) handleSaveRecord(c echo.Context) error {
	ctx := c.Request().Context()

	record, err := h.records.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if record.Type != c.Param("type") {
		return presenter.NotFound(c, "record not found")
	}

	params, err := c.FormParams()
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	values := make(map[string]string, len(params))
	for key := range params {
		values[key] = params.Get(key)
	}

	err = h.fields.Save(ctx, h.host.MetaBoxesFor(record.Type), usecase.SaveRequest{
		RecordID: record.ID,
		Values:   values,
		Autosave: c.FormValue("autosave") == "1",
		Nonce:    c.FormValue("nonce"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return presenter.Redirect(c, "/types/"+record.Type+"/records/"+record.ID+"/edit")
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
