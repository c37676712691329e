package handler

import "github.com/servicehub/marketplace-api/internal/core/domain"

type postMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type messageResponse struct {
	Success bool                `json:"success"`
	Message *domain.ChatMessage `json:"message"`
}

type threadResponse struct {
	Success  bool                  `json:"success"`
	Messages []*domain.ChatMessage `json:"messages"`
}
