package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingCancelled},
	BookingAccepted: {BookingCompleted, BookingCancelled},
}

var ErrBookingNotFound = errors.New("booking not found")
var ErrSlotTaken = errors.New("slot already booked for this worker and date")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidSlot = errors.New("slot is not a recognised time slot")
var ErrInvalidAddress = errors.New("address must be at least 5 characters")
var ErrInvalidDate = errors.New("date must be a calendar day in YYYY-MM-DD format")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the booking still occupies its slot.
func (s BookingStatus) Active() bool {
	return s != BookingCancelled
}

// Slots is the fixed set of bookable time-of-day labels. Each slot may be
// claimed at most once per worker per calendar date.
var Slots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"01:00 PM",
	"03:00 PM",
	"05:00 PM",
}

// IsValidSlot reports whether slot is one of the enumerated labels.
func IsValidSlot(slot string) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Booking is a customer's claim on a worker's time slot for one date.
type Booking struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	WorkerID      string        `json:"worker_id"`
	WorkerName    string        `json:"worker_name"`
	Date          string        `json:"date"`
	Slot          string        `json:"slot"`
	Status        BookingStatus `json:"status"`
	Price         float64       `json:"price"`
	PaymentMethod string        `json:"payment_method"`
	Address       string        `json:"address"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
