package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace-api/internal/core/domain"
	"github.com/servicehub/marketplace-api/internal/core/ports"
)

// ChatHandler handles the gated message threads. The counterpart path
// param is a worker profile ID when the caller is a customer, and a
// customer account ID when the caller is a worker.
type ChatHandler struct {
	chats ports.ChatService
}

func NewChatHandler(chats ports.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// PostMessage appends a message to the thread.
//
// @Summary      Send a chat message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        counterpartId  path      string              true  "Other side of the thread"
// @Param        body           body      postMessageRequest  true  "Message text"
// @Success      201            {object}  messageResponse
// @Failure      403            {object}  map[string]string
// @Router       /chats/{counterpartId}/messages [post]
func (h *ChatHandler) PostMessage(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chats.PostMessage(c.Request().Context(),
		ports.ChatActor{AccountID: userID, Role: role},
		c.Param("counterpartId"),
		req.Text,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: msg})
}

// ListMessages returns the thread oldest first.
//
// @Summary      Read a chat thread
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        counterpartId  path      string  true  "Other side of the thread"
// @Success      200            {object}  threadResponse
// @Failure      403            {object}  map[string]string
// @Router       /chats/{counterpartId}/messages [get]
func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID, _, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	msgs, err := h.chats.ListMessages(c.Request().Context(),
		ports.ChatActor{AccountID: userID, Role: role},
		c.Param("counterpartId"),
	)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []*domain.ChatMessage{}
	}

	return c.JSON(http.StatusOK, threadResponse{Success: true, Messages: msgs})
}
