package handlers

import (
	"errors"
	"net/http"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// LicenseHandlers exposes the partner's license and the upgrade operation
type LicenseHandlers struct {
	licenseSvc services.LicenseService
}

func NewLicenseHandlers(licenseSvc services.LicenseService) *LicenseHandlers {
	return &LicenseHandlers{licenseSvc: licenseSvc}
}

type UpgradeRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// Get returns the current license together with its plan
func (h *LicenseHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	details, err := h.licenseSvc.Get(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			return common.SendNotFoundError(c, "Partner")
		case errors.Is(err, services.ErrPlanNotFound):
			return common.SendServerError(c, "License plan could not be resolved")
		}
		return common.SendServerError(c, "Failed to get license")
	}

	return c.JSON(http.StatusOK, details)
}

// Upgrade moves the partner onto a paid plan
func (h *LicenseHandlers) Upgrade(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req UpgradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	planID, err := common.ValidateUUID(req.PlanID, "plan_id")
	if err != nil {
		return common.SendValidationError(c, "plan_id", err.Error())
	}

	license, err := h.licenseSvc.Upgrade(ctx, userID, planID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			return common.SendNotFoundError(c, "Partner")
		case errors.Is(err, services.ErrPlanNotFound):
			return common.SendNotFoundError(c, "Plan")
		case errors.Is(err, services.ErrPlanInactive):
			return echo.NewHTTPError(http.StatusBadRequest, "Plan is no longer offered")
		}
		return common.SendServerError(c, "Failed to upgrade license")
	}

	return c.JSON(http.StatusOK, license)
}
