package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/field-reservation/internal/model"
	"github.com/iliyamo/field-reservation/internal/queue"
	"github.com/iliyamo/field-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/field-reservation/internal/service"
)

// StaffHandler serves the verification desk: staff browse bookings,
// work through the queue of pending payments and decide each one.
type StaffHandler struct {
	Bookings *repository.BookingRepo
	Payments *repository.PaymentRepo
}

func NewStaffHandler(b *repository.BookingRepo, p *repository.PaymentRepo) *StaffHandler {
	if b == nil || p == nil {
		panic("nil repository passed to NewStaffHandler")
	}
	return &StaffHandler{Bookings: b, Payments: p}
}

// ListBookings returns bookings across all customers.  Supported
// filters: ?field_id=, ?customer_id=, ?date=YYYY-MM-DD, ?status=.
func (h *StaffHandler) ListBookings(c echo.Context) error {
	var filter repository.ListFilter
	if v := strings.TrimSpace(c.QueryParam("field_id")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid field_id"})
		}
		filter.FieldID = n
	}
	if v := strings.TrimSpace(c.QueryParam("customer_id")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer_id"})
		}
		filter.CustomerID = n
	}
	if v := strings.TrimSpace(c.QueryParam("date")); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		filter.Date = v
	}
	if v := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); v != "" {
		st := model.BookingStatus(v)
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

// ListPayments returns the payment queue, newest first.  Defaults to
// pending payments; ?status=VERIFIED or ?status=all widen the view.
func (h *StaffHandler) ListPayments(c echo.Context) error {
	status := model.PaymentPending
	if v := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); v != "" {
		if v == "ALL" {
			status = ""
		} else {
			st := model.PaymentStatus(v)
			if !st.IsValid() {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
			}
			status = st
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Payments.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list payments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": list})
}

type decideReq struct {
	Status string  `json:"status"` // VERIFIED | REJECTED
	Notes  *string `json:"notes"`
}

// DecidePayment verifies or rejects a payment.  The owning booking
// moves to CONFIRMED or CANCELLED in the same transaction, so a
// decided payment and its booking can never disagree.  A payment can
// only be decided once.
func (h *StaffHandler) DecidePayment(c echo.Context) error {
	verifierID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	decision := model.PaymentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if decision != model.PaymentVerified && decision != model.PaymentRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be VERIFIED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	d, err := h.Payments.Decide(ctx, h.Bookings, id, decision, verifierID, req.Notes)
	if err != nil {
		switch err {
		case repository.ErrPaymentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "payment already decided"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "decide payment failed"})
	}

	go func(d *repository.PaymentDetail) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishPaymentDecided(ctx, queue.PaymentDecidedEvent{
			PaymentID:     d.ID,
			BookingID:     d.BookingID,
			CustomerID:    d.BookingCustomerID,
			Decision:      string(d.Status),
			BookingStatus: string(d.BookingStatus),
			VerifiedByID:  verifierID,
			DecidedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}(d)

	return c.JSON(http.StatusOK, d)
}
