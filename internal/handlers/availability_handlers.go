package handlers

import (
	"errors"
	"net/http"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// AvailabilityHandlers handles a provider's weekly availability slots
type AvailabilityHandlers struct {
	availabilitySvc services.AvailabilityService
}

func NewAvailabilityHandlers(availabilitySvc services.AvailabilityService) *AvailabilityHandlers {
	return &AvailabilityHandlers{availabilitySvc: availabilitySvc}
}

func (h *AvailabilityHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	var req services.CreateAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	slot, err := h.availabilitySvc.Create(ctx, partner.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProviderNotFound) {
			return common.SendNotFoundError(c, "Provider")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, slot)
}

func (h *AvailabilityHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "availability ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.UpdateAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	slot, err := h.availabilitySvc.Update(ctx, partner.ID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrAvailabilityNotFound) {
			return common.SendNotFoundError(c, "Availability slot")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, slot)
}

func (h *AvailabilityHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "availability ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.availabilitySvc.Delete(ctx, partner.ID, id); err != nil {
		if errors.Is(err, services.ErrAvailabilityNotFound) {
			return common.SendNotFoundError(c, "Availability slot")
		}
		return common.SendServerError(c, "Failed to delete availability slot")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Availability slot deleted"})
}

func (h *AvailabilityHandlers) ListByProvider(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	providerID, err := common.ValidateUUID(c.Param("providerId"), "provider ID")
	if err != nil {
		return common.SendValidationError(c, "providerId", err.Error())
	}

	slots, err := h.availabilitySvc.ListByProvider(ctx, partner.ID, providerID)
	if err != nil {
		return common.SendServerError(c, "Failed to list availability")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"availability": slots})
}
