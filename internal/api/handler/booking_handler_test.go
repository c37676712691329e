package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

type stubBookingService struct {
	createFn       func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error)
	transitionFn   func(ctx context.Context, input ports.TransitionInput) (*domain.Booking, error)
	listCustomerFn func(ctx context.Context, customerID string) (*ports.BookingList, error)
	listWorkerFn   func(ctx context.Context, workerID string) (*ports.BookingList, error)
	availabilityFn func(ctx context.Context, workerID, date string) ([]string, error)
	earningsFn     func(ctx context.Context, workerID string) (float64, error)
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) Transition(ctx context.Context, input ports.TransitionInput) (*domain.Booking, error) {
	return s.transitionFn(ctx, input)
}

func (s *stubBookingService) ListForCustomer(ctx context.Context, customerID string) (*ports.BookingList, error) {
	return s.listCustomerFn(ctx, customerID)
}

func (s *stubBookingService) ListForWorker(ctx context.Context, workerID string) (*ports.BookingList, error) {
	return s.listWorkerFn(ctx, workerID)
}

func (s *stubBookingService) Availability(ctx context.Context, workerID, date string) ([]string, error) {
	return s.availabilityFn(ctx, workerID, date)
}

func (s *stubBookingService) Earnings(ctx context.Context, workerID string) (float64, error) {
	return s.earningsFn(ctx, workerID)
}

func setClaims(c echo.Context, userID, name, role string) {
	c.Set("user_id", userID)
	c.Set("full_name", name)
	c.Set("email", "someone@example.com")
	c.Set("role", role)
}

func TestBookingHandler_Create_Success(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
			if input.CustomerID != "acct-1" || input.CustomerName != "Alice Smith" {
				t.Fatalf("claims not propagated: %+v", input)
			}
			if input.WorkerID != "worker-1" || input.Slot != "10:00 AM" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Booking{ID: "booking-1", Status: domain.BookingPending}, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/bookings",
		`{"workerId":"worker-1","date":"2025-06-01","slot":"10:00 AM","price":50,"paymentMethod":"card","address":"12 Canal Street"}`)
	setClaims(c, "acct-1", "Alice Smith", "user")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp["success"])
	}
	booking, ok := resp["booking"].(map[string]any)
	if !ok {
		t.Fatalf("expected a booking object, got %T", resp["booking"])
	}
	if booking["status"] != "pending" {
		t.Fatalf("expected pending status, got %v", booking["status"])
	}
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/bookings", `{"workerId":"worker-1"}`)
	setClaims(c, "acct-1", "Alice Smith", "user")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookingHandler_Create_SlotTakenPassedThrough(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
			return nil, domain.ErrSlotTaken
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/bookings",
		`{"workerId":"worker-1","date":"2025-06-01","slot":"10:00 AM","price":50,"paymentMethod":"card","address":"12 Canal Street"}`)
	setClaims(c, "acct-1", "Alice Smith", "user")

	if err := h.Create(c); !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestBookingHandler_List_RoleSelectsView(t *testing.T) {
	customerCalled := false
	workerCalled := false
	stub := &stubBookingService{
		listCustomerFn: func(ctx context.Context, customerID string) (*ports.BookingList, error) {
			customerCalled = true
			return &ports.BookingList{}, nil
		},
		listWorkerFn: func(ctx context.Context, workerID string) (*ports.BookingList, error) {
			workerCalled = true
			return &ports.BookingList{}, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/bookings", "")
	setClaims(c, "acct-1", "Alice Smith", "user")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !customerCalled || workerCalled {
		t.Fatalf("customer view not selected")
	}

	customerCalled, workerCalled = false, false
	c, _ = newTestContext(t, http.MethodGet, "/bookings", "")
	setClaims(c, "acct-9", "Bob Wrench", "worker")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !workerCalled || customerCalled {
		t.Fatalf("worker view not selected")
	}
}

func TestBookingHandler_Availability_RequiresParams(t *testing.T) {
	stub := &stubBookingService{
		availabilityFn: func(ctx context.Context, workerID, date string) ([]string, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/bookings/availability?workerId=worker-1", "")

	err := h.Availability(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookingHandler_Availability_EmptyListNotNull(t *testing.T) {
	stub := &stubBookingService{
		availabilityFn: func(ctx context.Context, workerID, date string) ([]string, error) {
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/bookings/availability?workerId=worker-1&date=2025-06-01", "")

	if err := h.Availability(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	slots, ok := resp["bookedSlots"].([]any)
	if !ok {
		t.Fatalf("bookedSlots must serialize as an array, got %T", resp["bookedSlots"])
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty array, got %v", slots)
	}
}

func TestBookingHandler_Transition_PropagatesActor(t *testing.T) {
	stub := &stubBookingService{
		transitionFn: func(ctx context.Context, input ports.TransitionInput) (*domain.Booking, error) {
			if input.BookingID != "booking-1" || input.ActorID != "acct-9" || input.ActorRole != "worker" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.NewStatus != domain.BookingAccepted {
				t.Fatalf("unexpected status: %s", input.NewStatus)
			}
			return &domain.Booking{ID: "booking-1", Status: domain.BookingAccepted}, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/bookings/booking-1/status", `{"status":"accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues("booking-1")
	setClaims(c, "acct-9", "Bob Wrench", "worker")

	if err := h.Transition(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookingHandler_Transition_RejectsUnknownStatus(t *testing.T) {
	stub := &stubBookingService{
		transitionFn: func(ctx context.Context, input ports.TransitionInput) (*domain.Booking, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/bookings/booking-1/status", `{"status":"archived"}`)
	c.SetParamNames("id")
	c.SetParamValues("booking-1")
	setClaims(c, "acct-9", "Bob Wrench", "worker")

	err := h.Transition(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
