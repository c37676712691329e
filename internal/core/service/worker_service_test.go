package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

func workerAccount(t *testing.T, accounts *stubAccountRepo, name, email, role string) *domain.Account {
	t.Helper()
	account, err := accounts.Create(context.Background(), &domain.Account{
		FullName: name,
		Email:    email,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func TestWorkerService_UpsertProfile_Success(t *testing.T) {
	accounts := newStubAccountRepo()
	workers := newStubWorkerRepo()
	svc := NewWorkerService(workers, accounts, zerolog.Nop())

	account := workerAccount(t, accounts, "Bob Wrench", "bob@example.com", domain.RoleWorker)

	profile, err := svc.UpsertProfile(context.Background(), ports.UpsertProfileInput{
		OwnerAccountID: account.ID,
		City:           " Austin ",
		Experience:     5,
		HourlyRate:     40,
		Bio:            "Licensed plumber.",
		Services:       []string{" Plumber ", "", "ELECTRICIAN"},
	})
	if err != nil {
		t.Fatalf("UpsertProfile returned error: %v", err)
	}
	if profile.FullName != "Bob Wrench" {
		t.Fatalf("expected name from account, got %q", profile.FullName)
	}
	if profile.City != "Austin" {
		t.Fatalf("expected trimmed city, got %q", profile.City)
	}
	if len(profile.Services) != 2 || profile.Services[0] != "plumber" || profile.Services[1] != "electrician" {
		t.Fatalf("services not normalized: %v", profile.Services)
	}
	if !profile.ProfileCompleted {
		t.Fatalf("profile must be marked completed")
	}
}

func TestWorkerService_UpsertProfile_CustomerForbidden(t *testing.T) {
	accounts := newStubAccountRepo()
	workers := newStubWorkerRepo()
	svc := NewWorkerService(workers, accounts, zerolog.Nop())

	account := workerAccount(t, accounts, "Alice Smith", "alice@example.com", domain.RoleUser)

	_, err := svc.UpsertProfile(context.Background(), ports.UpsertProfileInput{OwnerAccountID: account.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer accounts, got %v", err)
	}
}

func TestWorkerService_UpsertProfile_UnknownAccount(t *testing.T) {
	svc := NewWorkerService(newStubWorkerRepo(), newStubAccountRepo(), zerolog.Nop())

	_, err := svc.UpsertProfile(context.Background(), ports.UpsertProfileInput{OwnerAccountID: "acct-404"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestWorkerService_UpsertProfile_ReplacesExisting(t *testing.T) {
	accounts := newStubAccountRepo()
	workers := newStubWorkerRepo()
	svc := NewWorkerService(workers, accounts, zerolog.Nop())

	account := workerAccount(t, accounts, "Bob Wrench", "bob@example.com", domain.RoleWorker)

	first, err := svc.UpsertProfile(context.Background(), ports.UpsertProfileInput{
		OwnerAccountID: account.ID,
		Services:       []string{"plumber"},
		HourlyRate:     40,
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := svc.UpsertProfile(context.Background(), ports.UpsertProfileInput{
		OwnerAccountID: account.ID,
		Services:       []string{"electrician"},
		HourlyRate:     55,
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert must keep the profile id, got %q then %q", first.ID, second.ID)
	}
	if second.HourlyRate != 55 || len(second.Services) != 1 || second.Services[0] != "electrician" {
		t.Fatalf("profile not replaced: %+v", second)
	}
}

func TestWorkerService_ListByService(t *testing.T) {
	accounts := newStubAccountRepo()
	workers := newStubWorkerRepo()
	svc := NewWorkerService(workers, accounts, zerolog.Nop())

	workers.add("acct-10", "Bob Wrench", "plumber")
	workers.add("acct-11", "Eve Volt", "electrician")

	all, err := svc.ListByService(context.Background(), "")
	if err != nil {
		t.Fatalf("ListByService returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both profiles, got %d", len(all))
	}
	for _, p := range all {
		if p.Image != "/placeholder.svg" {
			t.Fatalf("missing image fallback: %q", p.Image)
		}
	}

	plumbers, err := svc.ListByService(context.Background(), " Plumber ")
	if err != nil {
		t.Fatalf("ListByService returned error: %v", err)
	}
	if len(plumbers) != 1 || plumbers[0].FullName != "Bob Wrench" {
		t.Fatalf("unexpected filter result: %+v", plumbers)
	}

	none, err := svc.ListByService(context.Background(), "gardener")
	if err != nil {
		t.Fatalf("ListByService returned error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %d", len(none))
	}
}
