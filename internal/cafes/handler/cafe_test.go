package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "cafebook/pkg/errors"
	"cafebook/pkg/logger"
	"cafebook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCafeService struct {
	createFunc  func(ctx context.Context, cafe *model.Cafe) error
	getByIDFunc func(ctx context.Context, id string) (*model.Cafe, error)
	listFunc    func(ctx context.Context, city string) ([]*model.Cafe, error)
}

func (m *mockCafeService) Create(ctx context.Context, cafe *model.Cafe) error {
	return m.createFunc(ctx, cafe)
}

func (m *mockCafeService) GetByID(ctx context.Context, id string) (*model.Cafe, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCafeService) List(ctx context.Context, city string) ([]*model.Cafe, error) {
	return m.listFunc(ctx, city)
}

func newRouter(svc *mockCafeService) *httprouter.Router {
	router := httprouter.New()
	NewCafeHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate_Handler(t *testing.T) {
	router := newRouter(&mockCafeService{
		createFunc: func(ctx context.Context, cafe *model.Cafe) error {
			assert.Equal(t, "Arcade1", cafe.Name)
			cafe.ID = "C1"
			return nil
		},
	})

	body := `{"name":"Arcade1","city":"Metropolis","address":"1 Main St"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cafes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"C1"}`, rec.Body.String())
}

func TestCreate_Handler_ValidationError(t *testing.T) {
	router := newRouter(&mockCafeService{
		createFunc: func(ctx context.Context, cafe *model.Cafe) error {
			return apperrors.Validation("Cafe validation failed", map[string]any{"name": "name is required"})
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cafes", strings.NewReader(`{"city":"Metropolis"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestList_Handler_PassesCity(t *testing.T) {
	var gotCity string
	router := newRouter(&mockCafeService{
		listFunc: func(ctx context.Context, city string) ([]*model.Cafe, error) {
			gotCity = city
			return []*model.Cafe{{ID: "C1", Name: "Arcade1", City: city, Address: "1 Main St"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cafes?city=Metropolis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Metropolis", gotCity)
	assert.Contains(t, rec.Body.String(), `"id":"C1"`)
}

func TestGetByID_Handler(t *testing.T) {
	router := newRouter(&mockCafeService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Cafe, error) {
			return &model.Cafe{ID: id, Name: "Arcade1"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cafes/C1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"C1"`)
}
