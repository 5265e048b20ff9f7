// Package notify implements the WhatsApp notification stub. No message is
// ever delivered: the sender logs the intent and synthesizes an
// acknowledgment, which is all the clinic frontend consumes.
package notify

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/pkg/envelope"
)

// Ack is the synthesized delivery acknowledgment.
type Ack struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Phone     string `json:"phone"`
}

// Request is the POST /notify payload.
type Request struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Sender fabricates acknowledgments for notification requests.
type Sender struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewSender creates a notification sender.
func NewSender(logger zerolog.Logger) *Sender {
	return &Sender{logger: logger, now: time.Now}
}

// Send logs the intent and returns a "sent" acknowledgment echoing the phone
// number. The message id is derived from the current timestamp.
func (s *Sender) Send(phone, message string) Ack {
	s.logger.Info().Str("phone", phone).Str("message", message).Msg("sending WhatsApp notification")
	return Ack{
		MessageID: fmt.Sprintf("msg_%d", s.now().UnixNano()),
		Status:    "sent",
		Phone:     phone,
	}
}

// Handler exposes the sender over HTTP.
type Handler struct {
	sender *Sender
}

// NewHandler creates a notify handler.
func NewHandler(sender *Sender) *Handler {
	return &Handler{sender: sender}
}

// RegisterRoutes registers POST /notify on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/notify", h.Notify)
}

// Notify accepts {phone, message} and returns the synthesized ack. Only a
// malformed body fails.
func (h *Handler) Notify(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return envelope.Error(c, http.StatusInternalServerError, err.Error())
	}
	ack := h.sender.Send(req.Phone, req.Message)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":           true,
		"message":           "Notification sent successfully",
		"whatsapp_response": ack,
	})
}
