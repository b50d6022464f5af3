package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/services/catalog/application/api"
	"github.com/ghuser/stockroom/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
	"github.com/ghuser/stockroom/services/catalog/infrastructure/persistence/memory"
)

const testPass = "correct-horse-battery"

type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func (s *HandlerSuite) SetupTest() {
	store := memory.NewStore()
	items := store.Items()
	svcs := appsvcs.NewWithDeps(appsvcs.Deps{
		Categories: store.Categories(),
		Items:      items,
		Guard:      domainsvcs.NewDeletionGuard(testPass, items),
	})
	r := chi.NewRouter()
	api.Routes(r, svcs, errhttp.NewResponder(true, nil))
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *HandlerSuite) createCategory(name string) handlers.CategoryResponse {
	w := s.do(http.MethodPost, "/categories", handlers.CategoryRequest{Name: name, Description: "All the " + name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var c handlers.CategoryResponse
	s.decode(w, &c)
	return c
}

func (s *HandlerSuite) createItem(name string, categoryID uuid.UUID) handlers.ItemResponse {
	body := map[string]any{"name": name, "category": categoryID.String(), "nis": 2, "price": 9.99}
	w := s.do(http.MethodPost, "/items", body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var it handlers.ItemResponse
	s.decode(w, &it)
	return it
}

func (s *HandlerSuite) TestCreateCategory() {
	c := s.createCategory("Tools")
	s.Equal("/categories/"+c.ID.String(), c.URL)

	s.Run("duplicate name returns 409 with the existing category", func() {
		w := s.do(http.MethodPost, "/categories", handlers.CategoryRequest{Name: "Tools", Description: "Another one"})
		s.Require().Equal(http.StatusConflict, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		s.Require().NotNil(body.Existing)
		s.Equal(c.ID.String(), body.Existing.ID)
		s.Equal(c.URL, body.Existing.URL)
	})

	s.Run("invalid fields return 422 with every field", func() {
		w := s.do(http.MethodPost, "/categories", handlers.CategoryRequest{Name: "ab", Description: "abc"})
		s.Require().Equal(http.StatusUnprocessableEntity, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		s.Equal("Validation failed", body.Error)
		s.Contains(body.Fields, "name")
		s.Contains(body.Fields, "description")
	})

	s.Run("malformed JSON returns 400", func() {
		w := s.do(http.MethodPost, "/categories", "{not json")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestCategoryDetailAndList() {
	tools := s.createCategory("Tools")
	s.createCategory("Garden")
	hammer := s.createItem("Hammer", tools.ID)

	w := s.do(http.MethodGet, "/categories", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list []handlers.CategoryRef
	s.decode(w, &list)
	s.Require().Len(list, 2)
	s.Equal("Garden", list[0].Name)

	w = s.do(http.MethodGet, "/categories/"+tools.ID.String(), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var detail handlers.CategoryDetailResponse
	s.decode(w, &detail)
	s.Require().Len(detail.Items, 1)
	s.Equal(hammer.ID, detail.Items[0].ID)

	s.Run("unknown and malformed ids are 404", func() {
		s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/categories/"+uuid.NewString(), nil).Code)
		s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/categories/xyz789", nil).Code)
	})
}

func (s *HandlerSuite) TestUpdateCategory() {
	c := s.createCategory("Tools")
	s.createCategory("Garden")

	w := s.do(http.MethodPut, "/categories/"+c.ID.String(), handlers.CategoryRequest{Name: "Hand tools", Description: "Small tools"})
	s.Require().Equal(http.StatusOK, w.Code)
	var updated handlers.CategoryResponse
	s.decode(w, &updated)
	s.Equal("Hand tools", updated.Name)

	w = s.do(http.MethodPut, "/categories/"+c.ID.String(), handlers.CategoryRequest{Name: "Garden", Description: "Small tools"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerSuite) TestDeleteCategory() {
	tools := s.createCategory("Tools")
	s.createItem("Hammer", tools.ID)
	empty := s.createCategory("Empty")

	s.Run("dependents block with 409 and list the items", func() {
		w := s.do(http.MethodDelete, "/categories/"+tools.ID.String(), handlers.DeleteRequest{Pass: testPass})
		s.Require().Equal(http.StatusConflict, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		s.Equal([]string{"has dependents"}, body.Reasons)
		s.Len(body.Dependents, 1)
	})

	s.Run("wrong pass is 403 and reports both reasons", func() {
		w := s.do(http.MethodDelete, "/categories/"+tools.ID.String(), handlers.DeleteRequest{Pass: "nope"})
		s.Require().Equal(http.StatusForbidden, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		s.ElementsMatch([]string{"has dependents", "unauthorized"}, body.Reasons)
	})

	s.Run("overlong pass is a guard denial, not a validation error", func() {
		w := s.do(http.MethodDelete, "/categories/"+tools.ID.String(), handlers.DeleteRequest{Pass: strings.Repeat("x", 300)})
		s.Require().Equal(http.StatusForbidden, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		s.ElementsMatch([]string{"has dependents", "unauthorized"}, body.Reasons)
		s.Len(body.Dependents, 1)
	})

	s.Run("preview lists the blocking items", func() {
		w := s.do(http.MethodGet, "/categories/"+tools.ID.String()+"/delete", nil)
		s.Require().Equal(http.StatusOK, w.Code)
		var detail handlers.CategoryDetailResponse
		s.decode(w, &detail)
		s.Len(detail.Items, 1)
	})

	s.Run("empty category with the right pass is removed", func() {
		w := s.do(http.MethodDelete, "/categories/"+empty.ID.String(), handlers.DeleteRequest{Pass: testPass})
		s.Require().Equal(http.StatusNoContent, w.Code)
		s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/categories/"+empty.ID.String(), nil).Code)
	})

	s.Run("missing body is 400", func() {
		w := s.do(http.MethodDelete, "/categories/"+tools.ID.String(), nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestCreateItem() {
	tools := s.createCategory("Tools")

	s.Run("numbers and strings are accepted for price and nis", func() {
		it := s.createItem("Hammer", tools.ID)
		s.Require().NotNil(it.Price)
		s.Equal("9.99", *it.Price)
		s.EqualValues(2, it.NIS)
		s.Equal("/items/"+it.ID.String(), it.URL)
		s.NotEmpty(it.DAddedYYYYMMDD)
		s.Equal(it.DAdded, it.DAddedYYYYMMDD)

		w := s.do(http.MethodPost, "/items", map[string]any{
			"name": "Chisel", "category": tools.ID.String(), "nis": "7", "price": "3.50", "d_added": "1983-10-14",
		})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		var chisel handlers.ItemResponse
		s.decode(w, &chisel)
		s.Equal("Oct 14, 1983", chisel.DateAdded)
		s.Equal("1983-10-14", chisel.DAddedYYYYMMDD)
	})

	s.Run("unknown category is 422 on the category field", func() {
		w := s.do(http.MethodPost, "/items", map[string]any{"name": "Saw", "category": uuid.NewString(), "nis": 1})
		s.Require().Equal(http.StatusUnprocessableEntity, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		s.Contains(body.Fields, "category")
	})

	s.Run("invalid fields are 422", func() {
		w := s.do(http.MethodPost, "/items", map[string]any{"name": "S", "category": "x", "nis": -1, "price": "abc"})
		s.Require().Equal(http.StatusUnprocessableEntity, w.Code)

		var body handlers.ErrorResponse
		s.decode(w, &body)
		for _, f := range []string{"name", "category", "nis", "price"} {
			s.Contains(body.Fields, f)
		}
	})
}

func (s *HandlerSuite) TestItemReadsAndUpdate() {
	tools := s.createCategory("Tools")
	garden := s.createCategory("Garden")
	it := s.createItem("Hammer", tools.ID)

	w := s.do(http.MethodGet, "/items/"+it.ID.String(), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got handlers.ItemResponse
	s.decode(w, &got)
	s.Require().NotNil(got.Category)
	s.Equal("Tools", got.Category.Name)

	w = s.do(http.MethodPut, "/items/"+it.ID.String(), map[string]any{
		"name": "Sledge hammer", "category": garden.ID.String(), "nis": 1,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated handlers.ItemResponse
	s.decode(w, &updated)
	s.Equal(garden.ID, updated.CategoryID)
	s.Nil(updated.Price)
	s.Equal(it.DAdded, updated.DAdded)

	w = s.do(http.MethodGet, "/items", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list []handlers.ItemResponse
	s.decode(w, &list)
	s.Require().Len(list, 1)
	s.Equal("Garden", list[0].Category.Name)

	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/items/"+uuid.NewString(), map[string]any{
		"name": "Ghost", "category": garden.ID.String(), "nis": 1,
	}).Code)
}

func (s *HandlerSuite) TestDeleteItem() {
	tools := s.createCategory("Tools")
	it := s.createItem("Hammer", tools.ID)

	w := s.do(http.MethodGet, "/items/"+it.ID.String()+"/delete", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/items/"+it.ID.String(), handlers.DeleteRequest{Pass: "wrong"})
	s.Require().Equal(http.StatusForbidden, w.Code)
	var body handlers.ErrorResponse
	s.decode(w, &body)
	s.Equal([]string{"unauthorized"}, body.Reasons)

	w = s.do(http.MethodDelete, "/items/"+it.ID.String(), handlers.DeleteRequest{Pass: testPass})
	s.Require().Equal(http.StatusNoContent, w.Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/items/"+it.ID.String(), nil).Code)
}

func (s *HandlerSuite) TestSummaryAndFormOptions() {
	tools := s.createCategory("Tools")
	s.createCategory("Garden")
	s.createItem("Hammer", tools.ID)

	w := s.do(http.MethodGet, "/summary", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var sum handlers.SummaryResponse
	s.decode(w, &sum)
	s.Equal(2, sum.CategoryCount)
	s.Equal(1, sum.ItemCount)

	w = s.do(http.MethodGet, "/items/form-options", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var opts handlers.FormOptionsResponse
	s.decode(w, &opts)
	s.Require().Len(opts.Categories, 2)
	s.Equal("Garden", opts.Categories[0].Name)
	s.Equal(domainsvcs.Today(), opts.Today)
}
