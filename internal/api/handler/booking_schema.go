package handler

import "github.com/servicehub/marketplace-api/internal/core/domain"

type createBookingRequest struct {
	WorkerID      string  `json:"workerId"      validate:"required"`
	Date          string  `json:"date"          validate:"required"`
	Slot          string  `json:"slot"          validate:"required"`
	Price         float64 `json:"price"         validate:"gte=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	Address       string  `json:"address"       validate:"required"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted completed cancelled"`
}

type bookingResponse struct {
	Success bool            `json:"success"`
	Booking *domain.Booking `json:"booking"`
}

type bookingListResponse struct {
	Success bool              `json:"success"`
	Ongoing []*domain.Booking `json:"ongoing"`
	History []*domain.Booking `json:"history"`
}

type availabilityResponse struct {
	Success     bool     `json:"success"`
	WorkerID    string   `json:"workerId"`
	Date        string   `json:"date"`
	BookedSlots []string `json:"bookedSlots"`
}
