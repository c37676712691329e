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

type chatService struct {
	chats    ports.ChatRepository
	bookings ports.BookingRepository
	workers  ports.WorkerRepository
	log      zerolog.Logger
}

// NewChatService returns a ChatService implementation.
func NewChatService(
	chats ports.ChatRepository,
	bookings ports.BookingRepository,
	workers ports.WorkerRepository,
	log zerolog.Logger,
) ports.ChatService {
	return &chatService{chats: chats, bookings: bookings, workers: workers, log: log}
}

// PostMessage appends to the thread once the gate is open.
func (s *chatService) PostMessage(ctx context.Context, actor ports.ChatActor, counterpartID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	customerID, workerID, sender, err := s.resolveThread(ctx, actor, counterpartID)
	if err != nil {
		return nil, err
	}

	if err := s.requireUnlocked(ctx, customerID, workerID); err != nil {
		return nil, err
	}

	msg, err := s.chats.Append(ctx, &domain.ChatMessage{
		CustomerID: customerID,
		WorkerID:   workerID,
		Sender:     sender,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	metrics.ChatMessagesTotal.WithLabelValues(sender).Inc()
	return msg, nil
}

// ListMessages returns the thread in chronological order, gate permitting.
func (s *chatService) ListMessages(ctx context.Context, actor ports.ChatActor, counterpartID string) ([]*domain.ChatMessage, error) {
	customerID, workerID, _, err := s.resolveThread(ctx, actor, counterpartID)
	if err != nil {
		return nil, err
	}

	if err := s.requireUnlocked(ctx, customerID, workerID); err != nil {
		return nil, err
	}

	msgs, err := s.chats.ListThread(ctx, customerID, workerID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// resolveThread maps the caller onto the (customer, worker) thread key.
// Customers address a worker profile ID; workers address a customer
// account ID through their own profile.
func (s *chatService) resolveThread(ctx context.Context, actor ports.ChatActor, counterpartID string) (customerID, workerID, sender string, err error) {
	switch actor.Role {
	case domain.RoleUser:
		return actor.AccountID, counterpartID, domain.SenderCustomer, nil
	case domain.RoleWorker:
		profile, err := s.workers.FindByOwner(ctx, actor.AccountID)
		if err != nil {
			return "", "", "", domain.ErrForbidden
		}
		return counterpartID, profile.ID, domain.SenderWorker, nil
	default:
		return "", "", "", domain.ErrForbidden
	}
}

// requireUnlocked enforces the chat gate: some booking for the pair must
// have reached accepted (or completed).
func (s *chatService) requireUnlocked(ctx context.Context, customerID, workerID string) error {
	unlocked, err := s.bookings.HasUnlockedBooking(ctx, customerID, workerID)
	if err != nil {
		return fmt.Errorf("chat gate: %w", err)
	}
	if !unlocked {
		return domain.ErrChatLocked
	}
	return nil
}
