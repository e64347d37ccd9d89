package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/config"
	"github.com/iliyamo/field-reservation/internal/repository"
	"github.com/iliyamo/field-reservation/internal/schedule"
)

// ScheduleHandler serves the public availability view of a field: a
// list of uniform slots for one day, each marked available or occupied.
// The view is advisory — a slot shown available can be taken by the
// time the customer submits, and the booking commit re-checks.
type ScheduleHandler struct {
	Fields   *repository.FieldRepo
	Bookings *repository.BookingRepo
	Cfg      config.Config
}

func NewScheduleHandler(fields *repository.FieldRepo, bookings *repository.BookingRepo, cfg config.Config) *ScheduleHandler {
	if fields == nil || bookings == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Fields: fields, Bookings: bookings, Cfg: cfg}
}

// GetSchedule answers GET /v1/schedule?field_id=&date=.  date defaults
// to today; the response carries the field's operating window and one
// entry per slot between open and close.
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	fieldID, err := strconv.ParseUint(strings.TrimSpace(c.QueryParam("field_id")), 10, 64)
	if err != nil || fieldID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "field_id required"})
	}
	now := time.Now()
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = now.Format(schedule.DateLayout)
	} else if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	field, err := h.Fields.GetByID(ctx, fieldID)
	if err != nil {
		if err == repository.ErrFieldNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load field failed"})
	}
	if !field.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
	}

	booked, err := h.Bookings.ActiveSlots(ctx, fieldID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}

	width := h.Cfg.SlotMinutes
	if width <= 0 {
		width = schedule.DefaultSlotMinutes
	}
	slots := schedule.GenerateSlots(field.OpenTime, field.CloseTime, width)
	view := schedule.BuildSchedule(slots, booked, date, now)

	return c.JSON(http.StatusOK, echo.Map{
		"field_id":   field.ID,
		"field_name": field.Name,
		"date":       date,
		"open_time":  field.OpenTime,
		"close_time": field.CloseTime,
		"slots":      view,
	})
}
