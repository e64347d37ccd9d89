package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/booking"
	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/queue"
	"github.com/iliyamo/field-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/field-reservation/internal/service"
)

// CustomerHandler serves the booking endpoints available to CUSTOMER
// accounts.  All scheduling decisions go through the validator; the
// handler only adds ownership and lifecycle checks on top.
type CustomerHandler struct {
	Validator *booking.Validator
	Bookings  *repository.BookingRepo
	Payments  *repository.PaymentRepo
}

func NewCustomerHandler(v *booking.Validator, b *repository.BookingRepo, p *repository.PaymentRepo) *CustomerHandler {
	if v == nil || b == nil || p == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Validator: v, Bookings: b, Payments: p}
}

type bookingReq struct {
	FieldID       uint64  `json:"field_id"`
	BookingDate   string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	DurationHours int     `json:"duration_hours"`
	Notes         *string `json:"notes"`
}

// writeBookingError maps validator failures onto stable HTTP responses.
// Concurrent conflicts answer exactly like optimistic ones: the client
// cannot tell which check caught the overlap, and should not care.
func writeBookingError(c echo.Context, err error) error {
	var hoursErr *booking.HoursError
	var conflictErr *booking.ConflictError
	switch {
	case errors.Is(err, booking.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking request"})
	case errors.Is(err, booking.ErrFieldUnavailable):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
	case errors.As(err, &hoursErr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":      hoursErr.Error(),
			"open_time":  hoursErr.Open,
			"close_time": hoursErr.Close,
		})
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    conflictErr.Error(),
			"conflict": conflictErr.Conflict,
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}

// CreateBooking places a new PENDING booking for the authenticated
// customer, with its payment record awaiting a transfer proof.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Validator.Create(ctx, booking.Request{
		FieldID:       req.FieldID,
		CustomerID:    uid,
		Date:          strings.TrimSpace(req.BookingDate),
		StartTime:     strings.TrimSpace(req.StartTime),
		DurationHours: req.DurationHours,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeBookingError(c, err)
	}

	detail, err := h.Bookings.GetDetail(ctx, b.ID)
	if err != nil {
		// The booking is committed; answer with what we have.
		return c.JSON(http.StatusCreated, b)
	}

	go func(d *repository.BookingDetail) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
			BookingID:     d.ID,
			CustomerID:    d.CustomerID,
			FieldID:       d.FieldID,
			FieldName:     d.Field.Name,
			BookingDate:   d.BookingDate,
			StartTime:     d.StartTime,
			EndTime:       d.EndTime,
			DurationHours: d.DurationHours,
			TotalPrice:    d.TotalPrice,
			CreatedAt:     d.CreatedAt.UTC().Format(time.RFC3339),
		})
	}(detail)

	return c.JSON(http.StatusCreated, detail)
}

// ListMyBookings returns the authenticated customer's bookings, newest
// day first.  Use ?status=PENDING to narrow by state.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filter := repository.ListFilter{CustomerID: uid}
	if s := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); s != "" {
		st := model.BookingStatus(s)
		if !st.IsValid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		filter.Status = st
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.List(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// GetBooking returns one booking with its field, customer and payment.
// Customers can only see their own bookings.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
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
	if d.CustomerID != uid {
		// Existence of other customers' bookings is not disclosed.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateBooking moves a booking to a new date or interval.  Only
// PENDING bookings whose payment has not been decided can be edited;
// the new interval passes through every validation gate again.
func (h *CustomerHandler) UpdateBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	d, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if d.CustomerID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if d.Status != model.BookingPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only pending bookings can be edited"})
	}
	if d.Payment != nil && d.Payment.Status != model.PaymentPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "payment already decided"})
	}

	// Omitted fields fall back to the booking's current values so the
	// customer can change just the date or just the time.
	if req.FieldID == 0 {
		req.FieldID = d.FieldID
	}
	if strings.TrimSpace(req.BookingDate) == "" {
		req.BookingDate = d.BookingDate
	}
	if strings.TrimSpace(req.StartTime) == "" {
		req.StartTime = d.StartTime
	}
	if req.DurationHours == 0 {
		req.DurationHours = d.DurationHours
	}

	if _, err := h.Validator.Reschedule(ctx, &d.Booking, booking.Request{
		FieldID:       req.FieldID,
		CustomerID:    uid,
		Date:          strings.TrimSpace(req.BookingDate),
		StartTime:     strings.TrimSpace(req.StartTime),
		DurationHours: req.DurationHours,
		Notes:         req.Notes,
	}); err != nil {
		return writeBookingError(c, err)
	}

	updated, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// CancelBooking cancels an active booking.  The freed interval is
// immediately available to other customers.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
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
	if d.CustomerID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if !d.Status.IsActive() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not active"})
	}

	if err := h.Bookings.UpdateStatus(ctx, id, model.BookingCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type proofReq struct {
	ProofImageURL string `json:"proof_image_url"`
}

// UploadPaymentProof attaches the customer's transfer proof URL to a
// payment that has not been decided yet.
func (h *CustomerHandler) UploadPaymentProof(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var req proofReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.ProofImageURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "proof_image_url required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load payment failed"})
	}
	if p.BookingCustomerID != uid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
	}

	if err := h.Payments.SetProof(ctx, id, strings.TrimSpace(req.ProofImageURL)); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "payment already decided"})
		}
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save proof failed"})
	}

	updated, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load payment failed"})
	}
	return c.JSON(http.StatusOK, updated)
}
