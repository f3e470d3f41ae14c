package handlers

import (
	"errors"
	"net/http"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// PlanHandlers handles the plan catalog: public listing for upgrade pickers
// and platform-admin CRUD.
type PlanHandlers struct {
	planSvc services.PlanService
}

func NewPlanHandlers(planSvc services.PlanService) *PlanHandlers {
	return &PlanHandlers{planSvc: planSvc}
}

// ListActive returns the plans currently offered for signup and upgrade
func (h *PlanHandlers) ListActive(c echo.Context) error {
	plans, err := h.planSvc.List(c.Request().Context(), true)
	if err != nil {
		return common.SendServerError(c, "Failed to list plans")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plans": plans})
}

// ListAll returns every plan including retired ones
func (h *PlanHandlers) ListAll(c echo.Context) error {
	plans, err := h.planSvc.List(c.Request().Context(), false)
	if err != nil {
		return common.SendServerError(c, "Failed to list plans")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plans": plans})
}

func (h *PlanHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "plan ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	plan, err := h.planSvc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			return common.SendNotFoundError(c, "Plan")
		}
		return common.SendServerError(c, "Failed to get plan")
	}

	return c.JSON(http.StatusOK, plan)
}

func (h *PlanHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	plan, err := h.planSvc.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrPlanExists) {
			return echo.NewHTTPError(http.StatusConflict, "An active plan with this name already exists")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "plan ID")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req services.UpdatePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	plan, err := h.planSvc.Update(ctx, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			return common.SendNotFoundError(c, "Plan")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, plan)
}
