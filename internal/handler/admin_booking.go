package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/repository"
)

type statusReq struct {
	Status string `json:"status"`
}

// legalAdminTransition reports whether an admin may move a booking
// from one state to another.  CONFIRMED bookings complete or cancel;
// PENDING bookings can only be cancelled (confirmation belongs to the
// payment flow).  Terminal states never change.
func legalAdminTransition(from, to model.BookingStatus) bool {
	switch from {
	case model.BookingPending:
		return to == model.BookingCancelled
	case model.BookingConfirmed:
		return to == model.BookingCompleted || to == model.BookingCancelled
	case model.BookingCancelled, model.BookingCompleted:
		return false
	}
	return false
}

// UpdateBookingStatus applies an administrative state change, e.g.
// marking a played CONFIRMED booking COMPLETED.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next := model.BookingStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !next.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if !legalAdminTransition(d.Status, next) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "illegal status transition",
			"from":  d.Status,
			"to":    next,
		})
	}

	if err := h.Bookings.UpdateStatus(ctx, id, next); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}

	updated, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, updated)
}
