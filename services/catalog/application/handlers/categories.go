package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// CategoryHandler serves the /categories endpoints.
type CategoryHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewCategoryHandler returns a CategoryHandler backed by the given services.
func NewCategoryHandler(svc *appsvcs.Services, errs *errhttp.Responder) *CategoryHandler {
	return &CategoryHandler{svc: svc, errs: errs}
}

// List returns every category sorted by name.
//
//	@Summary	List categories
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}		CategoryRef
//	@Failure	500	{object}	ErrorResponse
//	@Router		/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Category.List(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	out := make([]CategoryRef, len(cats))
	for i, c := range cats {
		out[i] = NewCategoryRef(c)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get returns a category with its items.
//
//	@Summary	Get category
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"	format(uuid)
//	@Success	200	{object}	CategoryDetailResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindCategory)
	if !ok {
		return
	}
	detail, err := h.svc.Category.Get(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewCategoryDetailResponse(detail))
}

// DeletePreview returns the category and the items that would block its delete.
//
//	@Summary	Preview category delete
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"	format(uuid)
//	@Success	200	{object}	CategoryDetailResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id}/delete [get]
func (h *CategoryHandler) DeletePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindCategory)
	if !ok {
		return
	}
	detail, err := h.svc.Category.DeletePreview(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewCategoryDetailResponse(detail))
}

// Create adds a category.
//
//	@Summary		Create category
//	@Description	Creates a category. A name already in use returns 409 with the existing category.
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CategoryRequest	true	"Category fields"
//	@Success		201		{object}	CategoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.Category.Create(r.Context(), req.input())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.Created(w, c.URL(), NewCategoryResponse(c))
}

// Update replaces the name and description of a category.
//
//	@Summary	Update category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Category ID"	format(uuid)
//	@Param		request	body		CategoryRequest	true	"Category fields"
//	@Success	200		{object}	CategoryResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindCategory)
	if !ok {
		return
	}
	var req CategoryRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.Category.Update(r.Context(), id, req.input())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewCategoryResponse(c))
}

// Delete removes a category that has no items, given the deletion pass.
//
//	@Summary		Delete category
//	@Description	Denied with 403 on a wrong pass and 409 while items still reference the category.
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Category ID"	format(uuid)
//	@Param			request	body	DeleteRequest	true	"Deletion pass"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindCategory)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[DeleteRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Category.Delete(r.Context(), id, req.Pass); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.NoContent(w)
}
