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

type mockBookingService struct {
	createFunc      func(ctx context.Context, booking *model.Booking) (*model.BookingResult, error)
	getByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	cancelFunc      func(ctx context.Context, id string) (*model.BookingResult, error)
	listByOwnerFunc func(ctx context.Context, ownerID string) ([]*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) (*model.BookingResult, error) {
	return m.createFunc(ctx, booking)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) (*model.BookingResult, error) {
	return m.cancelFunc(ctx, id)
}

func (m *mockBookingService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	return m.listByOwnerFunc(ctx, ownerID)
}

func serve(svc *mockBookingService, method, path, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_Handler(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) (*model.BookingResult, error) {
			assert.Equal(t, "S1", booking.SlotID)
			assert.Equal(t, "a@x.com", booking.CustomerEmail)
			return &model.BookingResult{ID: "B1", Message: "Booking confirmed"}, nil
		},
	}

	body := `{"cafe_id":"C1","slot_id":"S1","customer_name":"Ann","customer_email":"a@x.com"}`
	rec := serve(svc, http.MethodPost, "/api/bookings", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"B1","message":"Booking confirmed"}`, rec.Body.String())
}

func TestCreate_Handler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"slot not found", apperrors.NotFound("Slot"), http.StatusNotFound, apperrors.CodeNotFound},
		{"slot taken", apperrors.InvalidState("Slot is not available"), http.StatusBadRequest, apperrors.CodeInvalidState},
		{"bad body", apperrors.Validation("Booking validation failed", nil), http.StatusUnprocessableEntity, apperrors.CodeValidation},
		{"store down", apperrors.Internal("Failed to create booking", nil), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, booking *model.Booking) (*model.BookingResult, error) {
					return nil, tt.err
				},
			}
			rec := serve(svc, http.MethodPost, "/api/bookings", `{"slot_id":"S1"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestCancel_Handler(t *testing.T) {
	svc := &mockBookingService{
		cancelFunc: func(ctx context.Context, id string) (*model.BookingResult, error) {
			return &model.BookingResult{ID: id, Message: "Booking cancelled"}, nil
		},
	}

	rec := serve(svc, http.MethodPost, "/api/bookings/id/B1/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"B1","message":"Booking cancelled"}`, rec.Body.String())
}

func TestGetByID_Handler(t *testing.T) {
	svc := &mockBookingService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, SlotID: "S1", Status: "confirmed"}, nil
		},
	}

	rec := serve(svc, http.MethodGet, "/api/bookings/id/B1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"B1"`)
	assert.NotContains(t, rec.Body.String(), "cancelled_at")
}

func TestListByOwner_Handler(t *testing.T) {
	svc := &mockBookingService{
		listByOwnerFunc: func(ctx context.Context, ownerID string) ([]*model.Booking, error) {
			assert.Equal(t, "owner-1", ownerID)
			return []*model.Booking{}, nil
		},
	}

	rec := serve(svc, http.MethodGet, "/api/owner/owner-1/bookings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
