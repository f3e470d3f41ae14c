package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// ProviderHandlers handles the partner's staff roster. All routes run behind
// the partner access and license middleware.
type ProviderHandlers struct {
	providerSvc services.ProviderService
}

func NewProviderHandlers(providerSvc services.ProviderService) *ProviderHandlers {
	return &ProviderHandlers{providerSvc: providerSvc}
}

func (h *ProviderHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	var req services.CreateProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	provider, err := h.providerSvc.Create(ctx, partner.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProviderLimitReached) {
			return common.SendForbiddenError(c, "PROVIDER_LIMIT_REACHED", "Provider limit reached for your plan. Please upgrade to add more providers.")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, provider)
}

func (h *ProviderHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "provider ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	provider, err := h.providerSvc.GetByID(ctx, partner.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrProviderNotFound) {
			return common.SendNotFoundError(c, "Provider")
		}
		return common.SendServerError(c, "Failed to get provider")
	}

	return c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "provider ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.UpdateProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	provider, err := h.providerSvc.Update(ctx, partner.ID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrProviderNotFound) {
			return common.SendNotFoundError(c, "Provider")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, provider)
}

// Deactivate frees the provider's slot; repeating the call is a no-op
func (h *ProviderHandlers) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "provider ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.providerSvc.Deactivate(ctx, partner.ID, id); err != nil {
		if errors.Is(err, services.ErrProviderNotFound) {
			return common.SendNotFoundError(c, "Provider")
		}
		return common.SendServerError(c, "Failed to deactivate provider")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Provider deactivated"})
}

func (h *ProviderHandlers) Reactivate(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "provider ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.providerSvc.Reactivate(ctx, partner.ID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrProviderNotFound):
			return common.SendNotFoundError(c, "Provider")
		case errors.Is(err, services.ErrProviderLimitReached):
			return common.SendForbiddenError(c, "PROVIDER_LIMIT_REACHED", "Provider limit reached for your plan. Please upgrade to reactivate this provider.")
		}
		return common.SendServerError(c, "Failed to reactivate provider")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Provider reactivated"})
}

func (h *ProviderHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	providers, err := h.providerSvc.List(ctx, partner.ID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list providers")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers": providers,
		"limit":     limit,
		"offset":    offset,
	})
}
