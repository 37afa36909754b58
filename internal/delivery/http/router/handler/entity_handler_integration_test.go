package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantrylink/internal/domain/entity"
	"pantrylink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stubSync serves canned registry contents to the handler under test.
type stubSync struct {
	views []entity.View
}

func (s *stubSync) Refresh(context.Context, usecase.RefreshInput) error { return nil }
func (s *stubSync) Sync(context.Context) error                          { return nil }
func (s *stubSync) Objects(entity.Category) any                         { return nil }
func (s *stubSync) Entities() []entity.View                             { return s.views }
func (s *stubSync) RequestStateRefresh(context.Context, string)         {}

func (s *stubSync) Entity(key string) (entity.View, bool) {
	for _, view := range s.views {
		if view.Key() == key {
			return view, true
		}
	}

	return nil, false
}

func (s *stubSync) FetchUserfields(context.Context, int) (entity.Userfields, error) {
	return nil, nil
}

func (s *stubSync) SetUserfields(context.Context, int, entity.Userfields) error {
	return nil
}

func (s *stubSync) Debug(context.Context) (usecase.DebugOutput, error) {
	return usecase.DebugOutput{IntegrationVersion: entity.IntegrationVersion}, nil
}

func TestEntityHandler_Entities_Integration(t *testing.T) {
	handler := &EntityHandler{
		syncUC: &stubSync{views: []entity.View{
			&entity.ProductView{Product: entity.Product{ID: 1, Name: "Milk"}, Amount: 2},
		}},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entities", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Entities(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"entity_id":"product:1"`)
	assert.Contains(t, responseBody, `"name":"Milk"`)
	assert.Contains(t, responseBody, `"state":2`)
}

func TestEntityHandler_Entity_Unknown_Integration(t *testing.T) {
	handler := &EntityHandler{
		syncUC: &stubSync{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/entities/product:42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues("product:42")

	err := handler.Entity(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ENTITY_NOT_FOUND")
}

func TestEntityHandler_Objects_InvalidCategory_Integration(t *testing.T) {
	handler := &EntityHandler{
		syncUC: &stubSync{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/objects/bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("category")
	c.SetParamValues("bogus")

	err := handler.Objects(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CATEGORY")
}
