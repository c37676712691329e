package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// ChatRepository defines persistence for chat threads. Messages are
// append-only; a thread is the (customer, worker) keyed sequence.
type ChatRepository interface {
	Append(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error)
	ListThread(ctx context.Context, customerID, workerID string) ([]*domain.ChatMessage, error)
}
