package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
)

// ErrorResponse is returned on all error responses. Fields, existing, reasons
// and dependents are present only for the errors that carry them.
type ErrorResponse = errhttp.ErrorBody

// CategoryRequest is the request body for POST and PUT /categories.
type CategoryRequest struct {
	Name        string `json:"name"        example:"Hand tools"`
	Description string `json:"description" example:"Hammers, saws and chisels"`
} // @name CategoryRequest

// ItemRequest is the request body for POST and PUT /items. Price and nis
// accept a JSON number or a string.
type ItemRequest struct {
	Name        string     `json:"name"        example:"Claw hammer"`
	Description string     `json:"description" example:"16 oz, fibreglass handle"`
	Category    string     `json:"category"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Price       flexString `json:"price"       swaggertype:"string" example:"12.50"`
	NIS         flexString `json:"nis"         swaggertype:"string" example:"4"`
	DAdded      string     `json:"d_added"     example:"2024-03-01"`
} // @name ItemRequest

// DeleteRequest is the request body for DELETE /categories/{id} and /items/{id}.
type DeleteRequest struct {
	Pass string `json:"pass" example:"s3cret-pass"`
} // @name DeleteRequest

// CategoryRef is the list projection of a category.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"   example:"123e4567-e89b-12d3-a456-426614174000"`
	Name string    `json:"name" example:"Hand tools"`
	URL  string    `json:"url"  example:"/categories/123e4567-e89b-12d3-a456-426614174000"`
} // @name CategoryRef

// CategoryResponse is a category with its virtual fields.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string    `json:"name"        example:"Hand tools"`
	Description string    `json:"description" example:"Hammers, saws and chisels"`
	URL         string    `json:"url"         example:"/categories/123e4567-e89b-12d3-a456-426614174000"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name CategoryResponse

// CategoryDetailResponse is a category with its dependent items.
type CategoryDetailResponse struct {
	CategoryResponse
	Items []ItemResponse `json:"items"`
} // @name CategoryDetailResponse

// ItemResponse is an item with its virtual fields. Category is embedded on
// detail and list views when it resolves.
type ItemResponse struct {
	ID             uuid.UUID    `json:"id"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	Name           string       `json:"name"               example:"Claw hammer"`
	Description    string       `json:"description"        example:"16 oz, fibreglass handle"`
	CategoryID     uuid.UUID    `json:"category_id"        example:"550e8400-e29b-41d4-a716-446655440000"`
	Category       *CategoryRef `json:"category,omitempty"`
	Price          *string      `json:"price"              example:"12.50"`
	NIS            int64        `json:"nis"                example:"4"`
	DAdded         string       `json:"d_added"            example:"2024-03-01"`
	DateAdded      string       `json:"date_added"         example:"Mar 1, 2024"`
	DAddedYYYYMMDD string       `json:"d_added_yyyy_mm_dd" example:"2024-03-01"`
	URL            string       `json:"url"                example:"/items/123e4567-e89b-12d3-a456-426614174000"`
	CreatedAt      time.Time    `json:"created_at"         example:"2024-01-15T10:30:00Z"`
	UpdatedAt      time.Time    `json:"updated_at"         example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// FormOptionsResponse lists what an item form needs.
type FormOptionsResponse struct {
	Categories []CategoryRef `json:"categories"`
	Today      string        `json:"today" example:"2024-03-01"`
} // @name FormOptionsResponse

// SummaryResponse is the catalog overview.
type SummaryResponse = appsvcs.Summary

// flexString decodes a JSON string or number into its text form so that
// numeric fields are validated with the same rules regardless of encoding.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (r CategoryRequest) input() domainsvcs.CategoryInput {
	return domainsvcs.CategoryInput{Name: r.Name, Description: r.Description}
}

func (r ItemRequest) input() domainsvcs.ItemInput {
	return domainsvcs.ItemInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       string(r.Price),
		NIS:         string(r.NIS),
		DAdded:      r.DAdded,
	}
}

// NewCategoryRef projects c for lists and choices.
func NewCategoryRef(c *models.Category) CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, URL: c.URL()}
}

// NewCategoryResponse renders c with its virtual fields.
func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		URL:         c.URL(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCategoryDetailResponse(d *models.CategoryDetail) CategoryDetailResponse {
	items := make([]ItemResponse, len(d.Items))
	for i, it := range d.Items {
		items[i] = NewItemResponse(it, nil)
	}
	return CategoryDetailResponse{CategoryResponse: NewCategoryResponse(d.Category), Items: items}
}

// NewItemResponse renders it with its virtual fields. cat may be nil.
func NewItemResponse(it *models.Item, cat *models.Category) ItemResponse {
	resp := ItemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Description:    it.Description,
		CategoryID:     it.CategoryID,
		NIS:            it.NIS,
		DAdded:         it.DAddedYYYYMMDD(),
		DateAdded:      it.DateAdded(),
		DAddedYYYYMMDD: it.DAddedYYYYMMDD(),
		URL:            it.URL(),
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
	if it.Price.Valid {
		p := it.Price.Decimal.String()
		resp.Price = &p
	}
	if cat != nil {
		ref := NewCategoryRef(cat)
		resp.Category = &ref
	}
	return resp
}

func NewItemDetailResponse(d *models.ItemDetail) ItemResponse {
	return NewItemResponse(d.Item, d.Category)
}

// pathID parses the {id} URL parameter. Malformed ids are reported as not
// found, since no entity can carry them.
func pathID(w http.ResponseWriter, r *http.Request, kind models.Kind) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, string(kind)+" not found")
		return uuid.Nil, false
	}
	return id, true
}
