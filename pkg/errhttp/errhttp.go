// Package errhttp maps domain sentinel errors to HTTP status codes and
// structured JSON bodies. Add a case to mapErrorToStatus for each new domain
// sentinel error, and a body in Write when the error carries extra detail.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// Ref identifies an entity in error bodies.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ErrorBody is the JSON shape of every error response. Only the fields
// relevant to the error are set.
type ErrorBody struct {
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields,omitempty"`
	Existing   *Ref              `json:"existing,omitempty"`
	Reasons    []string          `json:"reasons,omitempty"`
	Dependents []Ref             `json:"dependents,omitempty"`
}

// Responder writes error responses. 5xx errors are logged and reported to
// Sentry; in production their messages are masked.
type Responder struct {
	production bool
	log        logger.Logger
}

// NewResponder returns a Responder. log may be nil.
func NewResponder(production bool, log logger.Logger) *Responder {
	if log == nil {
		log = logger.Nop()
	}
	return &Responder{production: production, log: log}
}

// WriteError writes err without masking. Handlers use a Responder instead.
func WriteError(w http.ResponseWriter, err error) {
	NewResponder(false, nil).Write(w, nil, err)
}

// Write maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is()/errors.As() so wrapped errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func (re *Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	body := Body(err)

	if status >= http.StatusInternalServerError {
		if r != nil {
			re.log.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
			telemetry.CaptureRequestError(r, err)
		}
		body.Error = httpx.SafeError(err, status, re.production)
	}
	httpx.JSON(w, status, body)
}

// Body builds the JSON body for err.
func Body(err error) ErrorBody {
	var (
		ve *catalogdomain.ValidationError
		ce *catalogdomain.ConflictError
		de *catalogdomain.DenialError
		ie *catalogdomain.IntegrityError
	)
	switch {
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve.Fields))
		for _, f := range ve.Fields {
			if _, dup := fields[f.Field]; !dup {
				fields[f.Field] = f.Message
			}
		}
		return ErrorBody{Error: "Validation failed", Fields: fields}
	case errors.As(err, &ce):
		body := ErrorBody{Error: "Category name already exists"}
		if ce.Existing != nil {
			body.Existing = &Ref{ID: ce.Existing.ID.String(), Name: ce.Existing.Name, URL: ce.Existing.URL()}
		}
		return body
	case errors.As(err, &de):
		body := ErrorBody{Error: "Deletion denied", Reasons: make([]string, len(de.Reasons))}
		for i, reason := range de.Reasons {
			body.Reasons[i] = string(reason)
		}
		for _, it := range de.Dependents {
			body.Dependents = append(body.Dependents, itemRef(it))
		}
		return body
	case errors.As(err, &ie):
		return ErrorBody{
			Error:  "Referenced category does not exist",
			Fields: map[string]string{"category": "Category does not exist."},
		}
	}
	return ErrorBody{Error: err.Error()}
}

func mapErrorToStatus(err error) int {
	var de *catalogdomain.DenialError
	switch {
	case errors.Is(err, catalogdomain.ErrCategoryNotFound), errors.Is(err, catalogdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrCategoryNameTaken):
		return http.StatusConflict // 409
	case errors.As(err, &de):
		if de.HasReason(catalogdomain.ReasonUnauthorized) {
			return http.StatusForbidden // 403
		}
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrCategoryHasDependents):
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrInvalidInput), errors.Is(err, catalogdomain.ErrCategoryMissing):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}

func itemRef(it *models.Item) Ref {
	return Ref{ID: it.ID.String(), Name: it.Name, URL: it.URL()}
}
