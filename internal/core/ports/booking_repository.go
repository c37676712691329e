package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// BookingRepository defines persistence for the booking ledger.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// BookedSlots returns the slot labels of non-cancelled bookings for
	// the given worker and calendar date.
	BookedSlots(ctx context.Context, workerID, date string) ([]string, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)
	ListByWorker(ctx context.Context, workerID string) ([]*domain.Booking, error)
	// HasUnlockedBooking reports whether the (customer, worker) pair has a
	// booking with status accepted or completed.
	HasUnlockedBooking(ctx context.Context, customerID, workerID string) (bool, error)
}
