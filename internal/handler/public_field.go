package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints.  Guests
// can list fields and inspect a single field before registering; only
// active fields are visible here.
type PublicHandler struct {
	Fields *repository.FieldRepo
}

func NewPublicHandler(fields *repository.FieldRepo) *PublicHandler {
	if fields == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Fields: fields}
}

// GetPublicFields lists active fields.  Use ?sport=futsal to narrow
// the list to a single sport.
func (h *PublicHandler) GetPublicFields(c echo.Context) error {
	sport := strings.TrimSpace(c.QueryParam("sport"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fields, err := h.Fields.List(ctx, sport, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list fields failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"fields": fields})
}

// GetPublicField returns one active field by id.  Inactive fields are
// hidden from guests and answer 404 like missing ones.
func (h *PublicHandler) GetPublicField(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid field id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Fields.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrFieldNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load field failed"})
	}
	if !f.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
	}
	return c.JSON(http.StatusOK, f)
}
