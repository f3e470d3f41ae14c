package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminPartnerHandlers handles the platform-admin partner lifecycle:
// listing, approval, suspension and deletion.
type AdminPartnerHandlers struct {
	partnerSvc services.PartnerService
}

func NewAdminPartnerHandlers(partnerSvc services.PartnerService) *AdminPartnerHandlers {
	return &AdminPartnerHandlers{partnerSvc: partnerSvc}
}

func (h *AdminPartnerHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	status := c.QueryParam("status")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	partners, err := h.partnerSvc.List(ctx, status, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list partners")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"partners": partners,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *AdminPartnerHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "partner ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	partner, err := h.partnerSvc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			return common.SendNotFoundError(c, "Partner")
		}
		return common.SendServerError(c, "Failed to get partner")
	}

	return c.JSON(http.StatusOK, partner)
}

func (h *AdminPartnerHandlers) Approve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "partner ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	partner, err := h.partnerSvc.Approve(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			return common.SendNotFoundError(c, "Partner")
		case errors.Is(err, services.ErrPartnerAlreadyVerified):
			return echo.NewHTTPError(http.StatusConflict, "Partner is already verified")
		}
		return common.SendServerError(c, "Failed to approve partner")
	}

	return c.JSON(http.StatusOK, partner)
}

func (h *AdminPartnerHandlers) Suspend(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "partner ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	partner, err := h.partnerSvc.Suspend(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			return common.SendNotFoundError(c, "Partner")
		case errors.Is(err, services.ErrPartnerAlreadySuspended):
			return echo.NewHTTPError(http.StatusConflict, "Partner is already suspended")
		}
		return common.SendServerError(c, "Failed to suspend partner")
	}

	return c.JSON(http.StatusOK, partner)
}

func (h *AdminPartnerHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "partner ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.partnerSvc.Delete(ctx, id); err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			return common.SendNotFoundError(c, "Partner")
		}
		return common.SendServerError(c, "Failed to delete partner")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Partner deleted"})
}
