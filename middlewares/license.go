package middlewares

import (
	"strings"
	"time"

	"firmanager-backend/database"
	"firmanager-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadLicense resolves the organization's current license once per request
// and stashes it in c.Locals("license"). Runs after IsAuthenticatedHeader().
// Requests without a resolvable license still proceed; the gates below decide
// what they may do.
func LoadLicense() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, _ := c.Locals("orgID").(string)
		if strings.TrimSpace(orgID) == "" {
			return c.Next()
		}

		var lic models.License
		err := database.DB.
			Where("organization_id = ? AND status <> ?", orgID, models.LicenseRevoked).
			Order("created_at DESC").
			First(&lic).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusInternalServerError, "license lookup failed")
			}
			return c.Next()
		}

		c.Locals("license", &lic)
		return c.Next()
	}
}

// CurrentLicense returns the license loaded by LoadLicense, if any.
func CurrentLicense(c *fiber.Ctx) (*models.License, bool) {
	lic, ok := c.Locals("license").(*models.License)
	return lic, ok && lic != nil
}

// RequireFeature gates a route group behind a license feature flag
// (e.g. "hms").
func RequireFeature(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lic, ok := CurrentLicense(c)
		if !ok || !lic.HasFeature(feature) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "feature not available on current plan",
				"feature": feature,
			})
		}
		return c.Next()
	}
}

// RequireWritable rejects mutating requests when the organization has no
// usable license: missing or expired licenses degrade the account to
// read-only. License key activation stays open so expired accounts can
// renew.
func RequireWritable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method == fiber.MethodGet || method == fiber.MethodHead || method == fiber.MethodOptions {
			return c.Next()
		}
		if c.Path() == "/api/license/validate" {
			return c.Next()
		}

		lic, ok := CurrentLicense(c)
		if !ok {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"message": "no active license; start a trial or activate a license key",
			})
		}
		if lic.Status != models.LicenseActive || lic.IsExpired(time.Now()) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"message": "license expired; account is read-only until renewed",
			})
		}
		return c.Next()
	}
}

// CheckRecordLimit enforces a per-record-type seat/record limit before a
// create. currentCount is the tenant's existing row count for that type.
func CheckRecordLimit(c *fiber.Ctx, recordType string, currentCount int64) error {
	lic, ok := CurrentLicense(c)
	if !ok {
		return fiber.NewError(fiber.StatusPaymentRequired, "no active license")
	}
	if !lic.CanAddMore(recordType, currentCount) {
		return fiber.NewError(fiber.StatusForbidden, "plan limit reached for "+recordType)
	}
	return nil
}
