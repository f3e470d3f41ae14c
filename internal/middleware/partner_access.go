package middleware

import (
	"errors"
	"net/http"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// PartnerAccessMiddleware resolves the partner owned by the authenticated
// user and attaches it to the request context. Requests from users without a
// partner account are rejected before any partner-scoped handler runs.
func PartnerAccessMiddleware(partnerSvc services.PartnerService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			partner, err := partnerSvc.ResolveByOwner(ctx, userID)
			if err != nil {
				if errors.Is(err, services.ErrPartnerNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "Partner not found. Please create a partner account first.")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve partner")
			}

			c.SetRequest(c.Request().WithContext(common.WithPartner(ctx, partner)))
			return next(c)
		}
	}
}
