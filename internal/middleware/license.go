package middleware

import (
	"errors"
	"net/http"

	"slotify/internal/common"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

// LicenseMiddleware gates partner-scoped routes behind a usable license.
// Runs after PartnerAccessMiddleware; the reason code in the response tells
// the client whether the partner is suspended or the license lapsed.
func LicenseMiddleware(licenseSvc services.LicenseService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			partner, ok := common.GetPartnerFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "Partner not resolved")
			}

			if err := licenseSvc.Check(ctx, partner); err != nil {
				switch {
				case errors.Is(err, services.ErrPartnerInactive):
					return common.SendForbiddenError(c, "PARTNER_INACTIVE", "Partner account is not active")
				case errors.Is(err, services.ErrLicenseInactive):
					return common.SendForbiddenError(c, "LICENSE_INACTIVE", "License is not active")
				case errors.Is(err, services.ErrLicenseExpired):
					return common.SendForbiddenError(c, "LICENSE_EXPIRED", "License has expired. Please renew your subscription.")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check license")
			}

			return next(c)
		}
	}
}
