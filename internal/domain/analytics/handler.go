package analytics

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/pkg/envelope"
)

// Handler exposes the analytics snapshot over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates an analytics handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers GET /analytics on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics", h.Summary)
}

// Summary returns the dashboard snapshot.
func (h *Handler) Summary(c echo.Context) error {
	return envelope.Data(c, h.svc.Summarize(c.Request().Context()))
}
