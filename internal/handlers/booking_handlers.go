package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// BookingHandlers handles bookings from both sides: customers book against a
// partner, partner staff manage the booking lifecycle.
type BookingHandlers struct {
	bookingSvc services.BookingService
}

func NewBookingHandlers(bookingSvc services.BookingService) *BookingHandlers {
	return &BookingHandlers{bookingSvc: bookingSvc}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create books an appointment. The partner is addressed by path parameter
// because the caller is a customer, not the partner's owner.
func (h *BookingHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	partnerID, err := common.ValidateUUID(c.Param("partnerId"), "partner ID")
	if err != nil {
		return common.SendValidationError(c, "partnerId", err.Error())
	}

	var req services.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.PartnerID = partnerID
	req.UserID = userID

	booking, err := h.bookingSvc.Create(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProviderNotFound):
			return common.SendNotFoundError(c, "Provider")
		case errors.Is(err, services.ErrProviderInactive):
			return echo.NewHTTPError(http.StatusBadRequest, "Provider is not accepting bookings")
		case errors.Is(err, services.ErrServiceNotFound):
			return common.SendNotFoundError(c, "Service")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, booking)
}

// ListMine returns the authenticated customer's bookings
func (h *BookingHandlers) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	bookings, err := h.bookingSvc.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list bookings")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"limit":    limit,
		"offset":   offset,
	})
}

// Partner-side endpoints below run behind the partner access middleware.

func (h *BookingHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	booking, err := h.bookingSvc.GetByID(ctx, partner.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return common.SendNotFoundError(c, "Booking")
		}
		return common.SendServerError(c, "Failed to get booking")
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Status is required")
	}

	booking, err := h.bookingSvc.UpdateStatus(ctx, partner.ID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return common.SendNotFoundError(c, "Booking")
		case errors.Is(err, services.ErrInvalidBookingTransition):
			return echo.NewHTTPError(http.StatusConflict, "Booking cannot move to the requested status")
		}
		return common.SendServerError(c, "Failed to update booking status")
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	bookings, err := h.bookingSvc.List(ctx, partner.ID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list bookings")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListByProvider returns a provider's bookings inside a date range, used for
// calendar views. Defaults to the coming week.
func (h *BookingHandlers) ListByProvider(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	providerID, err := common.ValidateUUID(c.Param("providerId"), "provider ID")
	if err != nil {
		return common.SendValidationError(c, "providerId", err.Error())
	}

	from := time.Now()
	to := from.AddDate(0, 0, 7)
	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return common.SendValidationError(c, "from", "must be RFC3339 formatted")
		}
		from = parsed
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return common.SendValidationError(c, "to", "must be RFC3339 formatted")
		}
		to = parsed
	}

	bookings, err := h.bookingSvc.ListByProvider(ctx, partner.ID, providerID, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": bookings})
}
