package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/repository"
	"github.com/iliyamo/field-reservation/internal/schedule"
)

// AdminHandler manages the field inventory and administrative booking
// transitions.
type AdminHandler struct {
	Fields   *repository.FieldRepo
	Bookings *repository.BookingRepo
}

func NewAdminHandler(f *repository.FieldRepo, b *repository.BookingRepo) *AdminHandler {
	if f == nil || b == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Fields: f, Bookings: b}
}

type fieldReq struct {
	Name         *string `json:"name"`
	Sport        *string `json:"sport"`
	Size         *string `json:"size"`
	Description  *string `json:"description"`
	PricePerHour *int64  `json:"price_per_hour"`
	OpenTime     *string `json:"open_time"`
	CloseTime    *string `json:"close_time"`
	IsActive     *bool   `json:"is_active"`
}

// validateWindow checks that open and close parse as "HH:MM" and that
// the window is non-empty.  Midnight-crossing windows are not
// supported; a field open past midnight needs two rows.
func validateWindow(open, close string) (string, bool) {
	openMin, err := schedule.ToMinutes(open)
	if err != nil {
		return "open_time must be HH:MM", false
	}
	closeMin, err := schedule.ToMinutes(close)
	if err != nil {
		return "close_time must be HH:MM", false
	}
	if openMin >= closeMin {
		return "open_time must be before close_time", false
	}
	return "", true
}

// CreateField adds a field to the inventory.  Name, sport, price and
// the operating window are required; the field starts active.
func (h *AdminHandler) CreateField(c echo.Context) error {
	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Sport == nil || strings.TrimSpace(*req.Sport) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sport required"})
	}
	if req.PricePerHour == nil || *req.PricePerHour <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_hour must be positive"})
	}
	if req.OpenTime == nil || req.CloseTime == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_time and close_time required"})
	}
	if msg, ok := validateWindow(*req.OpenTime, *req.CloseTime); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	f := model.Field{
		Name:         strings.TrimSpace(*req.Name),
		Sport:        strings.ToLower(strings.TrimSpace(*req.Sport)),
		PricePerHour: *req.PricePerHour,
		OpenTime:     *req.OpenTime,
		CloseTime:    *req.CloseTime,
		Description:  req.Description,
	}
	if req.Size != nil {
		f.Size = strings.TrimSpace(*req.Size)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fields.Create(ctx, &f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create field failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// UpdateField rewrites a field.  Omitted attributes keep their current
// values, so PATCH-style partial updates work through the same route.
// Changing the operating window does not touch existing bookings that
// now fall outside it; those stay until cancelled.
func (h *AdminHandler) UpdateField(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid field id"})
	}
	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
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

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
		}
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Sport != nil {
		if strings.TrimSpace(*req.Sport) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sport cannot be empty"})
		}
		f.Sport = strings.ToLower(strings.TrimSpace(*req.Sport))
	}
	if req.Size != nil {
		f.Size = strings.TrimSpace(*req.Size)
	}
	if req.Description != nil {
		f.Description = req.Description
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_hour must be positive"})
		}
		f.PricePerHour = *req.PricePerHour
	}
	if req.OpenTime != nil {
		f.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		f.CloseTime = *req.CloseTime
	}
	if msg, ok := validateWindow(f.OpenTime, f.CloseTime); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}

	if err := h.Fields.Update(ctx, f); err != nil {
		if err == repository.ErrFieldNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update field failed"})
	}

	updated, err := h.Fields.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load field failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// ListFields is the admin inventory view: every field, including
// inactive ones the public endpoints hide.
func (h *AdminHandler) ListFields(c echo.Context) error {
	sport := strings.TrimSpace(c.QueryParam("sport"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fields, err := h.Fields.List(ctx, sport, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list fields failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"fields": fields})
}

// DeleteField removes a field with no active bookings.  Deactivate
// instead (is_active=false) to retire a field that still has PENDING
// or CONFIRMED bookings.
func (h *AdminHandler) DeleteField(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid field id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fields.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrFieldNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "field has active bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete field failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
