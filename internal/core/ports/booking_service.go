package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// CreateBookingInput carries all data needed to book a slot. CustomerID
// and CustomerName come from the session, never from the request body.
type CreateBookingInput struct {
	CustomerID    string
	CustomerName  string
	WorkerID      string
	Date          string
	Slot          string
	Price         float64
	PaymentMethod string
	Address       string
}

// TransitionInput identifies the booking, the acting account, and the
// requested target status.
type TransitionInput struct {
	BookingID string
	ActorID   string
	ActorRole string
	NewStatus domain.BookingStatus
}

// BookingList is a caller's view of the ledger, partitioned the way both
// dashboards render it.
type BookingList struct {
	Ongoing []*domain.Booking // pending, accepted
	History []*domain.Booking // completed, cancelled
}

// BookingService covers the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Transition(ctx context.Context, input TransitionInput) (*domain.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) (*BookingList, error)
	ListForWorker(ctx context.Context, workerID string) (*BookingList, error)
	// Availability returns the booked slot labels for a worker and date.
	Availability(ctx context.Context, workerID, date string) ([]string, error)
	// Earnings sums prices of the worker's accepted and completed bookings.
	Earnings(ctx context.Context, workerID string) (float64, error)
}
