package handlers

import (
	"errors"
	"net/http"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// PartnerHandlers handles self-service partner endpoints: onboarding and the
// authenticated owner's own partner record.
type PartnerHandlers struct {
	partnerSvc services.PartnerService
}

func NewPartnerHandlers(partnerSvc services.PartnerService) *PartnerHandlers {
	return &PartnerHandlers{partnerSvc: partnerSvc}
}

// Create onboards the authenticated user as a partner on the Free plan
func (h *PartnerHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.OwnerUserID = userID

	partner, err := h.partnerSvc.Create(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerExists):
			return echo.NewHTTPError(http.StatusConflict, "Partner account already exists for this user")
		case errors.Is(err, services.ErrNoFreePlan):
			return common.SendServerError(c, "Partner onboarding is temporarily unavailable")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, partner)
}

// GetMe returns the partner resolved by the access middleware
func (h *PartnerHandlers) GetMe(c echo.Context) error {
	partner, ok := common.GetPartnerFromContext(c.Request().Context())
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}
	return c.JSON(http.StatusOK, partner)
}

func (h *PartnerHandlers) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.UpdatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	partner, err := h.partnerSvc.Update(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			return common.SendNotFoundError(c, "Partner")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, partner)
}
