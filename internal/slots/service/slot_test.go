package service

import (
	"context"
	"errors"
	"testing"
	"time"

	slotserrors "cafebook/internal/slots/errors"
	slotvalidator "cafebook/internal/slots/validator"
	"cafebook/pkg/config"
	apperrors "cafebook/pkg/errors"
	"cafebook/pkg/logger"
	"cafebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockSlotRepository struct {
	insertManyFunc func(ctx context.Context, slots []*model.Slot) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Slot, error)
	findByCafeFunc func(ctx context.Context, cafeID, date string, limit int) ([]*model.Slot, error)
}

func (m *mockSlotRepository) InsertMany(ctx context.Context, slots []*model.Slot) error {
	if m.insertManyFunc != nil {
		return m.insertManyFunc(ctx, slots)
	}
	return nil
}

func (m *mockSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, slotserrors.ErrNotFound
}

func (m *mockSlotRepository) FindByCafe(ctx context.Context, cafeID, date string, limit int) ([]*model.Slot, error) {
	if m.findByCafeFunc != nil {
		return m.findByCafeFunc(ctx, cafeID, date, limit)
	}
	return []*model.Slot{}, nil
}

func (m *mockSlotRepository) Claim(ctx context.Context, slotID, bookingID string) error {
	return nil
}

func (m *mockSlotRepository) Release(ctx context.Context, slotID, bookingID string) (bool, error) {
	return false, nil
}

func (m *mockSlotRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestService(repo *mockSlotRepository) SlotService {
	log := logger.Discard()
	cfg := &config.Config{
		Log:               log,
		StoreReadTimeout:  5 * time.Second,
		StoreWriteTimeout: 5 * time.Second,
	}
	return NewSlotService(repo, slotvalidator.NewSlotValidator(log), cfg)
}

const cafeID = "507f1f77bcf86cd799439011"

func oneSlot(price float64) []model.SlotInput {
	return []model.SlotInput{{Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", Price: price}}
}

// ────────────────────────────────────────────────
// Tests for CreateBulk()
// ────────────────────────────────────────────────

func TestCreateBulk_Success(t *testing.T) {
	var inserted []*model.Slot
	repo := &mockSlotRepository{
		insertManyFunc: func(ctx context.Context, slots []*model.Slot) error {
			inserted = slots
			return nil
		},
	}
	svc := newTestService(repo)

	input := oneSlot(10)
	input[0].Status = config.SlotBooked
	input[0].CafeID = "some-other-cafe"

	created, err := svc.CreateBulk(context.Background(), &model.BulkSlotsRequest{CafeID: cafeID, Slots: input})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	require.Len(t, inserted, 1)
	s := inserted[0]
	assert.True(t, primitive.IsValidObjectID(s.ID))
	assert.Equal(t, cafeID, s.CafeID, "envelope cafe_id wins")
	assert.Equal(t, config.SlotAvailable, s.Status, "status is forced to available")
	assert.Empty(t, s.BookingID)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestCreateBulk_InvalidCafeID(t *testing.T) {
	repo := &mockSlotRepository{
		insertManyFunc: func(ctx context.Context, slots []*model.Slot) error {
			t.Fatal("nothing should be inserted")
			return nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.CreateBulk(context.Background(), &model.BulkSlotsRequest{CafeID: "C1", Slots: oneSlot(1)})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidState))
	assert.Equal(t, "Invalid cafe id", apperrors.AsAppError(err).Message)
}

func TestCreateBulk_ValidationBoundary(t *testing.T) {
	calls := 0
	repo := &mockSlotRepository{
		insertManyFunc: func(ctx context.Context, slots []*model.Slot) error {
			calls++
			return nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.CreateBulk(context.Background(), &model.BulkSlotsRequest{CafeID: cafeID, Slots: oneSlot(-1)})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, 0, calls, "rejected before any insert")

	created, err := svc.CreateBulk(context.Background(), &model.BulkSlotsRequest{CafeID: cafeID, Slots: oneSlot(0)})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, calls)
}

func TestCreateBulk_OneBadSlotRejectsAll(t *testing.T) {
	repo := &mockSlotRepository{
		insertManyFunc: func(ctx context.Context, slots []*model.Slot) error {
			t.Fatal("nothing should be inserted")
			return nil
		},
	}
	svc := newTestService(repo)

	slots := append(oneSlot(5), model.SlotInput{Date: "2024-13-01", StartTime: "10:00", EndTime: "11:00", Price: 5})
	_, err := svc.CreateBulk(context.Background(), &model.BulkSlotsRequest{CafeID: cafeID, Slots: slots})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "slots[1].date")
}

func TestCreateBulk_StoreFailure(t *testing.T) {
	repo := &mockSlotRepository{
		insertManyFunc: func(ctx context.Context, slots []*model.Slot) error {
			return errors.New("connection reset")
		},
	}
	svc := newTestService(repo)

	_, err := svc.CreateBulk(context.Background(), &model.BulkSlotsRequest{CafeID: cafeID, Slots: oneSlot(5)})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

// ────────────────────────────────────────────────
// Tests for GetByID() and ListByCafe()
// ────────────────────────────────────────────────

func TestGetByID(t *testing.T) {
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			switch id {
			case "S1":
				return &model.Slot{ID: "S1", Status: config.SlotBooked}, nil
			case "bad":
				return nil, slotserrors.ErrInvalidID
			case "boom":
				return nil, errors.New("boom")
			}
			return nil, slotserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	slot, err := svc.GetByID(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, config.SlotBooked, slot.Status)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = svc.GetByID(context.Background(), "bad")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = svc.GetByID(context.Background(), "boom")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestListByCafe_UsesFixedLimit(t *testing.T) {
	var gotLimit int
	var gotDate string
	repo := &mockSlotRepository{
		findByCafeFunc: func(ctx context.Context, cafeID, date string, limit int) ([]*model.Slot, error) {
			gotLimit = limit
			gotDate = date
			return []*model.Slot{{ID: "S1"}}, nil
		},
	}
	svc := newTestService(repo)

	slots, err := svc.ListByCafe(context.Background(), cafeID, "2024-01-01")
	require.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, config.SlotListLimit, gotLimit)
	assert.Equal(t, "2024-01-01", gotDate)
}
