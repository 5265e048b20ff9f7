package records

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/pkg/envelope"
)

// Handler exposes one table's CRUD operations over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates a handler for svc's table.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the table's routes on g, e.g. GET/POST /patients
// and PUT/DELETE /patients/:id.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	base := "/" + h.svc.Def().Name
	g.GET(base, h.List)
	g.POST(base, h.Create)
	g.PUT(base+"/:id", h.Update)
	g.DELETE(base+"/:id", h.Delete)
}

// List returns every record in the table.
func (h *Handler) List(c echo.Context) error {
	return envelope.Data(c, h.svc.List(c.Request().Context()))
}

// Create adds a new record from the request body.
func (h *Handler) Create(c echo.Context) error {
	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		return envelope.Error(c, http.StatusBadRequest, err.Error())
	}

	def := h.svc.Def()
	rec, err := h.svc.Create(c.Request().Context(), payload)
	if err != nil {
		return envelope.Error(c, http.StatusInternalServerError,
			fmt.Sprintf("Failed to save %s data", strings.ToLower(def.Label)))
	}
	return envelope.Created(c, def.Label+" added successfully", rec)
}

// Update merges partial fields into an existing record.
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return envelope.Error(c, http.StatusBadRequest, "invalid id")
	}
	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		return envelope.Error(c, http.StatusBadRequest, err.Error())
	}

	def := h.svc.Def()
	switch err := h.svc.Update(c.Request().Context(), id, payload); {
	case errors.Is(err, ErrNotFound):
		return envelope.Error(c, http.StatusNotFound, def.Label+" not found")
	case err != nil:
		return envelope.Error(c, http.StatusInternalServerError,
			fmt.Sprintf("Failed to update %s", strings.ToLower(def.Label)))
	}
	return envelope.Message(c, def.Label+" updated successfully")
}

// Delete removes a record by id.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return envelope.Error(c, http.StatusBadRequest, "invalid id")
	}

	def := h.svc.Def()
	switch err := h.svc.Delete(c.Request().Context(), id); {
	case errors.Is(err, ErrNotFound):
		return envelope.Error(c, http.StatusNotFound, def.Label+" not found")
	case err != nil:
		return envelope.Error(c, http.StatusInternalServerError,
			fmt.Sprintf("Failed to delete %s", strings.ToLower(def.Label)))
	}
	return envelope.Message(c, def.Label+" deleted successfully")
}
