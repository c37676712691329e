package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// AccountRepository defines persistence for verified accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// Update persists mutable fields (password hash, reset OTP fields).
	Update(ctx context.Context, account *domain.Account) error
}

// PendingSignupStore holds not-yet-verified signups keyed by email.
// At most one entry exists per email at a time; Put overwrites.
type PendingSignupStore interface {
	Get(ctx context.Context, email string) (*domain.PendingSignup, error)
	Put(ctx context.Context, pending *domain.PendingSignup) error
	Delete(ctx context.Context, email string) error
}
