package service

import (
	"context"
	"sync"
	"time"

	bookingserrors "cafebook/internal/bookings/errors"
	slotserrors "cafebook/internal/slots/errors"
	"cafebook/pkg/config"
	"cafebook/pkg/model"
)

// memorySlotStore applies claim and release as single atomic conditional
// updates, the same guarantee a MongoDB UpdateOne gives for one document.
type memorySlotStore struct {
	mu    sync.Mutex
	slots map[string]*model.Slot

	claimCalls int
	claimErrs  []error // returned in order before the real claim runs
}

func newMemorySlotStore(slots ...*model.Slot) *memorySlotStore {
	store := &memorySlotStore{slots: make(map[string]*model.Slot)}
	for _, s := range slots {
		store.slots[s.ID] = s
	}
	return store
}

func (m *memorySlotStore) FindByID(_ context.Context, id string) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[id]
	if !ok {
		return nil, slotserrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memorySlotStore) Claim(_ context.Context, slotID, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.claimCalls++
	if len(m.claimErrs) > 0 {
		err := m.claimErrs[0]
		m.claimErrs = m.claimErrs[1:]
		return err
	}

	s, ok := m.slots[slotID]
	if !ok || !(s.Status == config.SlotAvailable || s.BookingID == bookingID) {
		return slotserrors.ErrSlotUnavailable
	}
	s.Status = config.SlotBooked
	s.BookingID = bookingID
	s.UpdatedAt = time.Now()
	return nil
}

func (m *memorySlotStore) Release(_ context.Context, slotID, bookingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[slotID]
	if !ok || s.Status != config.SlotBooked || s.BookingID != bookingID {
		return false, nil
	}
	s.Status = config.SlotAvailable
	s.BookingID = ""
	return true, nil
}

func (m *memorySlotStore) get(id string) model.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.slots[id]
}

type memoryBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking

	insertErr         error
	storeDespiteError bool
	findErr           error
	findCalls         int
	findByCafeIDs     func(cafeIDs []string, limit int) ([]*model.Booking, error)
}

func newMemoryBookingRepository() *memoryBookingRepository {
	return &memoryBookingRepository{bookings: make(map[string]*model.Booking)}
}

func (m *memoryBookingRepository) Insert(_ context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		if m.storeDespiteError {
			cp := *booking
			m.bookings[booking.ID] = &cp
		}
		return m.insertErr
	}
	cp := *booking
	m.bookings[booking.ID] = &cp
	return nil
}

func (m *memoryBookingRepository) FindByID(_ context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memoryBookingRepository) FindByCafeIDs(_ context.Context, cafeIDs []string, limit int) ([]*model.Booking, error) {
	if m.findByCafeIDs != nil {
		return m.findByCafeIDs(cafeIDs, limit)
	}
	return []*model.Booking{}, nil
}

func (m *memoryBookingRepository) Cancel(_ context.Context, id string, at time.Time) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	if b.Status == config.Cancelled {
		cp := *b
		return &cp, bookingserrors.ErrAlreadyCancelled
	}
	b.Status = config.Cancelled
	b.CancelledAt = &at
	cp := *b
	return &cp, nil
}

func (m *memoryBookingRepository) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *memoryBookingRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type mockCafeStore struct {
	findIDsByOwner func(ctx context.Context, ownerID string) ([]string, error)
}

func (m *mockCafeStore) FindIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	if m.findIDsByOwner != nil {
		return m.findIDsByOwner(ctx, ownerID)
	}
	return []string{}, nil
}

type recordedEvent struct {
	eventType string
	bookingID string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, booking *model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{eventType: eventType, bookingID: booking.ID})
	return p.err
}
