package domain

import (
	"errors"
	"time"
)

const (
	SenderCustomer = "customer"
	SenderWorker   = "worker"
)

var ErrChatLocked = errors.New("chat is locked until the worker accepts a booking")
var ErrEmptyMessage = errors.New("message text is required")

// ChatMessage is one entry in the append-only thread between a customer
// and a worker. Threads are keyed by the (customer, worker) pair and
// unlock once a booking for the pair reaches accepted.
type ChatMessage struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	WorkerID   string    `json:"worker_id"`
	Sender     string    `json:"sender"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
