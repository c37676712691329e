package ports

import (
	"context"

	"github.com/servicehub/marketplace-api/internal/core/domain"
)

// ChatActor identifies the caller on chat operations. For a customer the
// counterpart is a worker profile ID and vice versa.
type ChatActor struct {
	AccountID string
	Role      string
}

// ChatService gates and serves message threads.
type ChatService interface {
	PostMessage(ctx context.Context, actor ChatActor, counterpartID, text string) (*domain.ChatMessage, error)
	ListMessages(ctx context.Context, actor ChatActor, counterpartID string) ([]*domain.ChatMessage, error)
}
