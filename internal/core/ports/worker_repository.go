package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// WorkerRepository defines persistence for worker directory profiles.
type WorkerRepository interface {
	// Upsert creates the profile on first call and fully replaces mutable
	// fields afterwards. Rating and review count are preserved on update.
	Upsert(ctx context.Context, profile *domain.WorkerProfile) (*domain.WorkerProfile, error)
	FindByOwner(ctx context.Context, ownerAccountID string) (*domain.WorkerProfile, error)
	FindByID(ctx context.Context, id string) (*domain.WorkerProfile, error)
	// List returns completed profiles, optionally filtered by service tag.
	List(ctx context.Context, serviceTag string) ([]*domain.WorkerProfile, error)
}
