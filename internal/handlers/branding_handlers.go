package handlers

import (
	"log"
	"net/http"
	"time"

	"slotify/internal/caching"
	"slotify/internal/common"
	"slotify/internal/repositories"
	"slotify/internal/services"

	"github.com/labstack/echo/v4"
)

const presignedURLExpiry = 15 * time.Minute

// BrandingHandlers handles partner branding assets: logo and banner uploads
// into object storage plus presigned download URLs.
type BrandingHandlers struct {
	mediaSvc    services.MediaService
	partnerRepo repositories.PartnerRepository
	cacheSvc    caching.CacheService
}

func NewBrandingHandlers(mediaSvc services.MediaService, partnerRepo repositories.PartnerRepository, cacheSvc caching.CacheService) *BrandingHandlers {
	return &BrandingHandlers{
		mediaSvc:    mediaSvc,
		partnerRepo: partnerRepo,
		cacheSvc:    cacheSvc,
	}
}

// UploadLogo replaces the partner's logo
func (h *BrandingHandlers) UploadLogo(c echo.Context) error {
	return h.upload(c, "logo")
}

// UploadBanner replaces the partner's banner
func (h *BrandingHandlers) UploadBanner(c echo.Context) error {
	return h.upload(c, "banner")
}

func (h *BrandingHandlers) upload(c echo.Context, kind string) error {
	ctx := c.Request().Context()

	partner, ok := common.GetPartnerFromContext(ctx)
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		return echo.NewHTTPError(http.StatusBadRequest, "File must be a JPEG, PNG or WebP image")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	objectName, err := h.mediaSvc.UploadBrandingAsset(ctx, partner.ID, kind, fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		return common.SendServerError(c, "Failed to store uploaded file")
	}

	var previous *string
	if kind == "logo" {
		previous = partner.LogoObject
		partner.LogoObject = &objectName
	} else {
		previous = partner.BannerObject
		partner.BannerObject = &objectName
	}

	if err := h.partnerRepo.Update(ctx, partner); err != nil {
		return common.SendServerError(c, "Failed to save branding")
	}
	if err := h.cacheSvc.DeletePartnerByOwner(ctx, partner.OwnerUserID); err != nil {
		log.Printf("WARN: failed to invalidate partner cache after branding update: %v", err)
	}

	// The replaced object is orphaned once the new one is persisted.
	if previous != nil {
		if err := h.mediaSvc.DeleteAsset(ctx, *previous); err != nil {
			log.Printf("WARN: failed to delete replaced %s object %s: %v", kind, *previous, err)
		}
	}

	url, err := h.mediaSvc.PresignedURL(objectName, presignedURLExpiry)
	if err != nil {
		log.Printf("WARN: uploaded %s but failed to presign URL: %v", kind, err)
		return c.JSON(http.StatusCreated, map[string]string{"object": objectName})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"object": objectName,
		"url":    url,
	})
}

// Get returns the partner's branding with fresh presigned URLs
func (h *BrandingHandlers) Get(c echo.Context) error {
	partner, ok := common.GetPartnerFromContext(c.Request().Context())
	if !ok {
		return common.SendServerError(c, "Partner not resolved")
	}

	branding := map[string]interface{}{
		"primary_color":   partner.PrimaryColor,
		"secondary_color": partner.SecondaryColor,
		"logo_url":        nil,
		"banner_url":      nil,
	}

	if partner.LogoObject != nil {
		if url, err := h.mediaSvc.PresignedURL(*partner.LogoObject, presignedURLExpiry); err == nil {
			branding["logo_url"] = url
		}
	}
	if partner.BannerObject != nil {
		if url, err := h.mediaSvc.PresignedURL(*partner.BannerObject, presignedURLExpiry); err == nil {
			branding["banner_url"] = url
		}
	}

	return c.JSON(http.StatusOK, branding)
}
