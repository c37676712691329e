package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace-api/internal/api/metrics"
	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

// SlotLocker serializes booking creation per (worker, date, slot) so the
// availability check cannot race with a concurrent create.
type SlotLocker interface {
	// Acquire returns false when another create currently holds the slot.
	Acquire(ctx context.Context, workerID, date, slot string) (bool, error)
	Release(ctx context.Context, workerID, date, slot string)
}

type bookingService struct {
	bookings ports.BookingRepository
	workers  ports.WorkerRepository
	locker   SlotLocker
	log      zerolog.Logger
}

// NewBookingService returns a BookingService implementation.
func NewBookingService(
	bookings ports.BookingRepository,
	workers ports.WorkerRepository,
	locker SlotLocker,
	log zerolog.Logger,
) ports.BookingService {
	return &bookingService{
		bookings: bookings,
		workers:  workers,
		locker:   locker,
		log:      log,
	}
}

// Create books a slot for a customer. The slot must be free of any
// non-cancelled booking for the same worker and date.
func (s *bookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if !domain.IsValidSlot(input.Slot) {
		return nil, domain.ErrInvalidSlot
	}
	address := strings.TrimSpace(input.Address)
	if len(address) < 5 {
		return nil, domain.ErrInvalidAddress
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	worker, err := s.workers.FindByID(ctx, input.WorkerID)
	if err != nil {
		return nil, err
	}

	// Serialize the check-then-insert. A held lock means a concurrent
	// create for the exact same slot, which is a conflict either way.
	acquired, err := s.locker.Acquire(ctx, input.WorkerID, input.Date, input.Slot)
	if err != nil {
		s.log.Warn().Err(err).Str("worker_id", input.WorkerID).Msg("slot lock unavailable, proceeding unlocked")
	} else if !acquired {
		metrics.SlotConflictsTotal.Inc()
		return nil, domain.ErrSlotTaken
	} else {
		defer s.locker.Release(ctx, input.WorkerID, input.Date, input.Slot)
	}

	taken, err := s.bookings.BookedSlots(ctx, input.WorkerID, input.Date)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	for _, slot := range taken {
		if slot == input.Slot {
			metrics.SlotConflictsTotal.Inc()
			return nil, domain.ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		WorkerID:      worker.ID,
		WorkerName:    worker.FullName,
		Date:          input.Date,
		Slot:          input.Slot,
		Status:        domain.BookingPending,
		Price:         input.Price,
		PaymentMethod: input.PaymentMethod,
		Address:       address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(input.Slot).Inc()
	s.log.Info().
		Str("booking_id", created.ID).
		Str("worker_id", created.WorkerID).
		Str("date", created.Date).
		Str("slot", created.Slot).
		Msg("booking created")

	return created, nil
}

// Transition moves a booking through its state machine. Accept and
// complete belong to the owning worker; cancel belongs to the owning
// worker or the owning customer.
func (s *bookingService) Transition(ctx context.Context, input ports.TransitionInput) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(ctx, booking, input); err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(input.NewStatus) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, input.NewStatus)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, input.NewStatus); err != nil {
		return nil, fmt.Errorf("transition booking: %w", err)
	}

	booking.Status = input.NewStatus
	booking.UpdatedAt = time.Now().UTC()

	metrics.BookingTransitionsTotal.WithLabelValues(string(input.NewStatus)).Inc()
	s.log.Info().
		Str("booking_id", booking.ID).
		Str("status", string(input.NewStatus)).
		Msg("booking status changed")

	return booking, nil
}

func (s *bookingService) authorizeTransition(ctx context.Context, booking *domain.Booking, input ports.TransitionInput) error {
	switch input.NewStatus {
	case domain.BookingAccepted, domain.BookingCompleted:
		return s.requireOwningWorker(ctx, booking, input.ActorID)
	case domain.BookingCancelled:
		if input.ActorRole == domain.RoleUser {
			if booking.CustomerID != input.ActorID {
				return domain.ErrForbidden
			}
			return nil
		}
		return s.requireOwningWorker(ctx, booking, input.ActorID)
	default:
		return domain.ErrInvalidTransition
	}
}

func (s *bookingService) requireOwningWorker(ctx context.Context, booking *domain.Booking, actorID string) error {
	profile, err := s.workers.FindByOwner(ctx, actorID)
	if err != nil {
		return domain.ErrForbidden
	}
	if profile.ID != booking.WorkerID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *bookingService) ListForCustomer(ctx context.Context, customerID string) (*ports.BookingList, error) {
	all, err := s.bookings.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return partition(all), nil
}

// ListForWorker resolves the caller's worker profile and returns its ledger.
func (s *bookingService) ListForWorker(ctx context.Context, workerAccountID string) (*ports.BookingList, error) {
	profile, err := s.workers.FindByOwner(ctx, workerAccountID)
	if err != nil {
		return nil, err
	}
	all, err := s.bookings.ListByWorker(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return partition(all), nil
}

func (s *bookingService) Availability(ctx context.Context, workerID, date string) ([]string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidDate
	}
	slots, err := s.bookings.BookedSlots(ctx, workerID, date)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	return slots, nil
}

// Earnings sums the prices of the worker's accepted and completed bookings.
func (s *bookingService) Earnings(ctx context.Context, workerAccountID string) (float64, error) {
	profile, err := s.workers.FindByOwner(ctx, workerAccountID)
	if err != nil {
		return 0, err
	}
	all, err := s.bookings.ListByWorker(ctx, profile.ID)
	if err != nil {
		return 0, fmt.Errorf("earnings: %w", err)
	}

	var total float64
	for _, b := range all {
		if b.Status == domain.BookingAccepted || b.Status == domain.BookingCompleted {
			total += b.Price
		}
	}
	return total, nil
}

func partition(all []*domain.Booking) *ports.BookingList {
	list := &ports.BookingList{
		Ongoing: []*domain.Booking{},
		History: []*domain.Booking{},
	}
	for _, b := range all {
		switch b.Status {
		case domain.BookingPending, domain.BookingAccepted:
			list.Ongoing = append(list.Ongoing, b)
		default:
			list.History = append(list.History, b)
		}
	}
	return list
}
