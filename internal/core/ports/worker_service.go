package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// UpsertProfileInput carries the mutable worker profile fields. Empty
// FullName falls back to the owning account's name.
type UpsertProfileInput struct {
	OwnerAccountID string
	FullName       string
	City           string
	Experience     int
	HourlyRate     float64
	Bio            string
	Services       []string
	Image          string
}

// WorkerService covers directory publication and queries.
type WorkerService interface {
	UpsertProfile(ctx context.Context, input UpsertProfileInput) (*domain.WorkerProfile, error)
	ListByService(ctx context.Context, serviceTag string) ([]*domain.WorkerProfile, error)
}
