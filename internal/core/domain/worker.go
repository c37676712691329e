package domain

import (
	"errors"
	"time"
)

var ErrWorkerNotFound = errors.New("worker not found")

// WorkerProfile is the directory entry a worker account publishes. A
// profile belongs to exactly one account and is only listed once
// ProfileCompleted is set.
type WorkerProfile struct {
	ID               string    `json:"id"`
	OwnerAccountID   string    `json:"-"`
	FullName         string    `json:"name"`
	City             string    `json:"city"`
	Experience       int       `json:"experience"`
	HourlyRate       float64   `json:"hourlyRate"`
	Bio              string    `json:"bio"`
	Services         []string  `json:"services"`
	ProfileCompleted bool      `json:"-"`
	Image            string    `json:"image"`
	Rating           float64   `json:"rating"`
	ReviewCount      int       `json:"reviews"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// OffersService reports whether tag is one of the profile's service
// categories. Tags are stored lowercase.
func (w *WorkerProfile) OffersService(tag string) bool {
	for _, s := range w.Services {
		if s == tag {
			return true
		}
	}
	return false
}
