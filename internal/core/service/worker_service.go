package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

type workerService struct {
	workers  ports.WorkerRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

// NewWorkerService returns a WorkerService implementation.
func NewWorkerService(workers ports.WorkerRepository, accounts ports.AccountRepository, log zerolog.Logger) ports.WorkerService {
	return &workerService{workers: workers, accounts: accounts, log: log}
}

// UpsertProfile publishes or fully replaces the caller's directory entry.
// Only accounts with role worker may hold a profile.
func (s *workerService) UpsertProfile(ctx context.Context, input ports.UpsertProfileInput) (*domain.WorkerProfile, error) {
	account, err := s.accounts.FindByID(ctx, input.OwnerAccountID)
	if err != nil {
		return nil, err
	}
	if account.Role != domain.RoleWorker {
		return nil, domain.ErrForbidden
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = account.FullName
	}

	services := make([]string, 0, len(input.Services))
	for _, tag := range input.Services {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			services = append(services, tag)
		}
	}

	profile := &domain.WorkerProfile{
		OwnerAccountID:   account.ID,
		FullName:         fullName,
		City:             strings.TrimSpace(input.City),
		Experience:       input.Experience,
		HourlyRate:       input.HourlyRate,
		Bio:              strings.TrimSpace(input.Bio),
		Services:         services,
		ProfileCompleted: true,
		Image:            input.Image,
	}

	saved, err := s.workers.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("upsert worker profile: %w", err)
	}

	s.log.Info().Str("worker_id", saved.ID).Strs("services", saved.Services).Msg("worker profile saved")
	return saved, nil
}

// ListByService returns completed profiles, filtered by tag when given.
func (s *workerService) ListByService(ctx context.Context, serviceTag string) ([]*domain.WorkerProfile, error) {
	tag := strings.ToLower(strings.TrimSpace(serviceTag))

	profiles, err := s.workers.List(ctx, tag)
	if err != nil {
		if errors.Is(err, domain.ErrWorkerNotFound) {
			return []*domain.WorkerProfile{}, nil
		}
		return nil, fmt.Errorf("list workers: %w", err)
	}

	for _, p := range profiles {
		if p.Image == "" {
			p.Image = "/placeholder.svg"
		}
	}
	return profiles, nil
}
