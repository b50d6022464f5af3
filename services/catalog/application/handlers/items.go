package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// ItemHandler serves the /items endpoints.
type ItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewItemHandler returns an ItemHandler backed by the given services.
func NewItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ItemHandler {
	return &ItemHandler{svc: svc, errs: errs}
}

// List returns every item sorted by name with its category.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Success	200	{array}		ItemResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items [get]
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.svc.Item.List(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	out := make([]ItemResponse, len(details))
	for i, d := range details {
		out[i] = NewItemDetailResponse(d)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// FormOptions returns the category choices and the default date for item forms.
//
//	@Summary	Item form options
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	FormOptionsResponse
//	@Router		/items/form-options [get]
func (h *ItemHandler) FormOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.svc.Item.FormOptions(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	out := FormOptionsResponse{Categories: make([]CategoryRef, len(opts.Categories)), Today: opts.Today}
	for i, c := range opts.Categories {
		out.Categories[i] = NewCategoryRef(c)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get returns an item with its category.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"	format(uuid)
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindItem)
	if !ok {
		return
	}
	detail, err := h.svc.Item.Get(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewItemDetailResponse(detail))
}

// DeletePreview returns the item a delete would remove.
//
//	@Summary	Preview item delete
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"	format(uuid)
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/delete [get]
func (h *ItemHandler) DeletePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindItem)
	if !ok {
		return
	}
	detail, err := h.svc.Item.DeletePreview(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewItemDetailResponse(detail))
}

// Create adds an item to an existing category.
//
//	@Summary		Create item
//	@Description	Creates an item. d_added defaults to today; an unknown category returns 422.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ItemRequest	true	"Item fields"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	it, err := h.svc.Item.Create(r.Context(), req.input())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.Created(w, it.URL(), NewItemResponse(it, nil))
}

// Update replaces every field of an item.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Item ID"	format(uuid)
//	@Param		request	body		ItemRequest	true	"Item fields"
//	@Success	200		{object}	ItemResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id} [put]
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindItem)
	if !ok {
		return
	}
	var req ItemRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	it, err := h.svc.Item.Update(r.Context(), id, req.input())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewItemResponse(it, nil))
}

// Delete removes an item given the deletion pass.
//
//	@Summary	Delete item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string			true	"Item ID"	format(uuid)
//	@Param		request	body	DeleteRequest	true	"Deletion pass"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, models.KindItem)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[DeleteRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Item.Delete(r.Context(), id, req.Pass); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.NoContent(w)
}
