package controllers

import (
	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type createEmployeeDTO struct {
	Initials string `json:"initials" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Position string `json:"position" validate:"required"`

	InternalRate float64 `json:"internal_rate" validate:"gte=0"`
	InvoiceRate  float64 `json:"invoice_rate" validate:"gte=0"`

	PAServiceRate      float64 `json:"pa_service_rate" validate:"gte=0"`
	PAInstallationRate float64 `json:"pa_installation_rate" validate:"gte=0"`
	PAHourlyRate       float64 `json:"pa_hourly_rate" validate:"gte=0"`
	PADriveRate        float64 `json:"pa_drive_rate" validate:"gte=0"`
	PAKmRate           float64 `json:"pa_km_rate" validate:"gte=0"`
}

func CreateEmployee(c *fiber.Ctx) error {
	var dto createEmployeeDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	employee := models.Employee{
		Initials:           dto.Initials,
		Name:               dto.Name,
		Email:              dto.Email,
		Phone:              dto.Phone,
		Position:           dto.Position,
		InternalRate:       dto.InternalRate,
		InvoiceRate:        dto.InvoiceRate,
		PAServiceRate:      dto.PAServiceRate,
		PAInstallationRate: dto.PAInstallationRate,
		PAHourlyRate:       dto.PAHourlyRate,
		PADriveRate:        dto.PADriveRate,
		PAKmRate:           dto.PAKmRate,
	}
	if err := db.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create employee",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func GetEmployees(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var employees []models.Employee
	if err := db.Order("name").Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list employees"})
	}
	return c.JSON(fiber.Map{"employees": employees})
}

func GetEmployee(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var employee models.Employee
	if err := db.Where("id = ?", c.Params("id")).First(&employee).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "employee not found"})
	}
	return c.JSON(employee)
}

type updateEmployeeDTO struct {
	Initials *string `json:"initials"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Position *string `json:"position"`

	InternalRate *float64 `json:"internal_rate"`
	InvoiceRate  *float64 `json:"invoice_rate"`

	PAServiceRate      *float64 `json:"pa_service_rate"`
	PAInstallationRate *float64 `json:"pa_installation_rate"`
	PAHourlyRate       *float64 `json:"pa_hourly_rate"`
	PADriveRate        *float64 `json:"pa_drive_rate"`
	PAKmRate           *float64 `json:"pa_km_rate"`
}

func UpdateEmployee(c *fiber.Ctx) error {
	var dto updateEmployeeDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var employee models.Employee
	if err := db.Where("id = ?", c.Params("id")).First(&employee).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "employee not found"})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(employee)
	}
	if err := db.Model(&employee).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update employee",
			"error":   err.Error(),
		})
	}
	return c.JSON(employee)
}

func DeleteEmployee(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.Employee{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete employee"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "employee not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
