package service

import (
	"context"
	"sync"

	"cafebook/pkg/config"
	apperrors "cafebook/pkg/errors"
	"cafebook/pkg/model"
)

// Counter is satisfied by every repository.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type StatsService interface {
	Get(ctx context.Context) (*model.Stats, error)
}

type statsService struct {
	cafes    Counter
	slots    Counter
	bookings Counter
	cfg      *config.Config
}

func NewStatsService(cafes, slots, bookings Counter, cfg *config.Config) StatsService {
	return &statsService{
		cafes:    cafes,
		slots:    slots,
		bookings: bookings,
		cfg:      cfg,
	}
}

// Get counts the three collections concurrently.
func (s *statsService) Get(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	var errCafes, errSlots, errBookings error
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		stats.Cafes, errCafes = s.cafes.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		stats.Slots, errSlots = s.slots.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		stats.Bookings, errBookings = s.bookings.Count(ctx)
	}()

	wg.Wait()

	for name, err := range map[string]error{"cafes": errCafes, "slots": errSlots, "bookings": errBookings} {
		if err != nil {
			s.cfg.Log.Error("Failed to count collection", "collection", name, "error", err)
			return nil, apperrors.Internal("Failed to retrieve stats", err)
		}
	}

	return &stats, nil
}
