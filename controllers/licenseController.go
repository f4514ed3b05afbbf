package controllers

import (
	"errors"
	"os"
	"strings"
	"time"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/services"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type generateLicenseDTO struct {
	OrganizationId string `json:"organization_id"`
	Tier           string `json:"tier" validate:"required,oneof=trial free pro enterprise"`
	ExpiresAt      string `json:"expires_at"`
}

// GenerateLicense mints a license key. Guarded by the ADMIN_API_KEY header
// since key generation is an operator action, not a tenant one.
func GenerateLicense(c *fiber.Ctx) error {
	adminKey := os.Getenv("ADMIN_API_KEY")
	if adminKey == "" || c.Get("X-Admin-Key") != adminKey {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin key required"})
	}

	var dto generateLicenseDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	var expiresAt *time.Time
	if strings.TrimSpace(dto.ExpiresAt) != "" {
		t, err := utils.ParseDate(dto.ExpiresAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid expires_at")
		}
		expiresAt = &t
	}

	svc := services.NewLicenseService(database.DB)
	lic, err := svc.Generate(dto.OrganizationId, dto.Tier, expiresAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate license",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(lic)
}

type validateLicenseDTO struct {
	LicenseKey string `json:"license_key" validate:"required"`
}

// ValidateLicense activates a key for the caller's organization. Unbound
// keys bind on first use.
func ValidateLicense(c *fiber.Ctx) error {
	var dto validateLicenseDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	orgID, _ := c.Locals("orgID").(string)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "organization context missing"})
	}

	svc := services.NewLicenseService(database.DB)
	lic, err := svc.Validate(strings.TrimSpace(dto.LicenseKey), orgID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLicenseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, services.ErrLicenseRevoked),
			errors.Is(err, services.ErrLicenseExpired),
			errors.Is(err, services.ErrLicenseBound):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "license validation failed"})
		}
	}

	return c.JSON(fiber.Map{
		"valid":          true,
		"tier":           lic.Tier,
		"status":         lic.Status,
		"days_remaining": lic.DaysRemaining(time.Now()),
		"features":       lic.ParseFeatures(),
	})
}

// CheckLicense reports the caller's current license state; the client uses
// it to decide which modules to show and whether to warn about expiry.
func CheckLicense(c *fiber.Ctx) error {
	lic, ok := middlewares.CurrentLicense(c)
	if !ok {
		return c.JSON(fiber.Map{
			"valid":   false,
			"message": "no license on record",
		})
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"valid":          lic.Status == models.LicenseActive && !lic.IsExpired(now),
		"tier":           lic.Tier,
		"status":         lic.Status,
		"expires_at":     lic.ExpiresAt,
		"days_remaining": lic.DaysRemaining(now),
		"max_users":      lic.MaxUsers,
		"features":       lic.ParseFeatures(),
	})
}
