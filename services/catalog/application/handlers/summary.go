package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
)

// GetSummaryHandler handles GET /summary requests.
type GetSummaryHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetSummaryHandler returns a GetSummaryHandler backed by the given services.
func NewGetSummaryHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetSummaryHandler {
	return &GetSummaryHandler{svc: svc, errs: errs}
}

// Execute returns the category and item counts.
//
//	@Summary	Catalog summary
//	@Tags		summary
//	@Produce	json
//	@Success	200	{object}	SummaryResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/summary [get]
func (h *GetSummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary.Get(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}
