package controllers

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Register creates the user, their organization, the tenant schema and a
// 14-day trial license in one go. The public-schema writes share a
// transaction; the schema DDL and tenant migration run outside it because
// CREATE SCHEMA cannot be rolled back together with them anyway.
func Register(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "invalid email format",
		})
	}

	var mailExist models.User
	database.DB.Where("email = ?", data["email"]).First(&mailExist)
	if mailExist.Email != "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "email already exists",
		})
	}

	if data["password"] != data["password_confirm"] {
		c.Status(400)
		return c.JSON(fiber.Map{
			"message": "passwords do not match",
		})
	}
	if len(data["password"]) < 8 {
		c.Status(400)
		return c.JSON(fiber.Map{
			"message": "password must be at least 8 characters",
		})
	}

	orgName := strings.TrimSpace(data["organization_name"])
	if orgName == "" {
		c.Status(400)
		return c.JSON(fiber.Map{
			"message": "organization_name is required",
		})
	}

	schemaName, err := createSchema(orgName)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"message": "Registration failed due to internal error",
			"error":   err.Error(),
		})
	}

	tx := database.DB.Begin()

	user := models.User{
		Name:       data["name"],
		Email:      data["email"],
		Role:       "admin",
		SchemaName: schemaName,
	}
	user.SetPassword(data["password"])
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create user",
			"error":   err.Error(),
		})
	}

	org := models.Organization{
		Name:        orgName,
		OrgNumber:   data["org_number"],
		Address:     data["address"],
		PostalCode:  data["postal_code"],
		City:        data["city"],
		Country:     data["country"],
		PhoneNumber: data["phone_number"],
		Email:       data["email"],
		OwnerId:     user.Id,
		SchemaName:  schemaName,
	}
	if err := tx.Create(&org).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create organization",
			"error":   err.Error(),
		})
	}

	user.OrganizationId = org.Id
	if err := tx.Updates(&user).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	}

	trial, err := services.NewTrialLicense(org.Id, time.Now())
	if err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create trial license"})
	}
	if err := tx.Create(&trial).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create trial license"})
	}

	if err := database.MigrateTenantSchema(schemaName); err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not migrate tenant schema"})
	}

	tx.Commit()

	return c.JSON(fiber.Map{
		"organization": org,
		"license_key":  trial.Key,
		"trial_until":  trial.ExpiresAt,
	})
}

func createSchema(name string) (string, error) {
	safeName := strings.ToLower(strings.TrimSpace(name))
	safeName = strings.ReplaceAll(safeName, " ", "_")
	// Validate schema name (only letters, numbers, underscores; must start with letter/underscore)
	valid := regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	if !valid.MatchString(safeName) {
		return "", fmt.Errorf("invalid schema name after sanitization: %s", safeName)
	}

	// Create schema if not exists
	if err := database.DB.Exec("CREATE SCHEMA IF NOT EXISTS " + safeName).Error; err != nil {
		return "", err
	}
	return safeName, nil
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	var user models.User

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "invalid email format",
		})
	}

	database.DB.Table("public.users").Where("email = ?", data["email"]).First(&user)

	if _, err := uuid.Parse(user.Id); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "invalid credentials",
		})
	}

	if err := user.ComparePassword(data["password"]); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "invalid credentials",
		})
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName, user.OrganizationId)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"message": "could not sign token",
		})
	}

	if err := database.MigrateTenantSchema(user.SchemaName); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not migrate tenant schema"})
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"schema": user.SchemaName,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Me returns the authenticated user plus their organization's license state.
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.DB.Table("public.users").Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	resp := fiber.Map{
		"id":    user.Id,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
	if lic, ok := middlewares.CurrentLicense(c); ok {
		resp["license"] = fiber.Map{
			"tier":           lic.Tier,
			"status":         lic.Status,
			"days_remaining": lic.DaysRemaining(time.Now()),
			"features":       lic.ParseFeatures(),
		}
	}
	return c.JSON(resp)
}
