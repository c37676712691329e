package handler

import "github.com/servicehub/marketplace-api/internal/core/domain"

type upsertProfileRequest struct {
	FullName   string   `json:"name"`
	City       string   `json:"city"       validate:"required"`
	Experience int      `json:"experience" validate:"gte=0"`
	HourlyRate float64  `json:"hourlyRate" validate:"gt=0"`
	Bio        string   `json:"bio"`
	Services   []string `json:"services"   validate:"required,min=1"`
	Image      string   `json:"image"`
}

type workerResponse struct {
	Success bool                  `json:"success"`
	Worker  *domain.WorkerProfile `json:"worker"`
}

type workerListResponse struct {
	Success bool                    `json:"success"`
	Workers []*domain.WorkerProfile `json:"workers"`
}

type earningsResponse struct {
	Success bool    `json:"success"`
	Balance float64 `json:"balance"`
}
