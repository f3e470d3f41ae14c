package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// ServiceHandlers handles the partner's catalog of bookable services
type ServiceHandlers struct {
	catalogSvc services.ServiceCatalogService
}

func NewServiceHandlers(catalogSvc services.ServiceCatalogService) *ServiceHandlers {
	return &ServiceHandlers{catalogSvc: catalogSvc}
}

func (h *ServiceHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	var req services.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	service, err := h.catalogSvc.Create(ctx, partner.ID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "service ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	service, err := h.catalogSvc.GetByID(ctx, partner.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return common.SendNotFoundError(c, "Service")
		}
		return common.SendServerError(c, "Failed to get service")
	}

	return c.JSON(http.StatusOK, service)
}

func (h *ServiceHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "service ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	service, err := h.catalogSvc.Update(ctx, partner.ID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return common.SendNotFoundError(c, "Service")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, service)
}

func (h *ServiceHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	id, err := common.ValidateUUID(c.Param("id"), "service ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.catalogSvc.Delete(ctx, partner.ID, id); err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return common.SendNotFoundError(c, "Service")
		}
		return common.SendServerError(c, "Failed to delete service")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Service deleted"})
}

func (h *ServiceHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	items, err := h.catalogSvc.List(ctx, partner.ID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list services")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"services": items,
		"limit":    limit,
		"offset":   offset,
	})
}
