package controllers

import (
	"strings"
	"time"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type createPayoutDTO struct {
	EmployeeId string  `json:"employee_id" validate:"required,uuid4"`
	Type       string  `json:"type" validate:"required,oneof=salary bonus pension holiday_pay"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	Date       string  `json:"date" validate:"required"`
}

func CreatePayout(c *fiber.Ctx) error {
	var dto createPayoutDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	date, err := utils.ParseDate(dto.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var employeeCount int64
	db.Model(&models.Employee{}).Where("id = ?", dto.EmployeeId).Count(&employeeCount)
	if employeeCount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "employee does not exist"})
	}

	payout := models.Payout{
		EmployeeId: dto.EmployeeId,
		Type:       dto.Type,
		Amount:     dto.Amount,
		Date:       date,
	}
	if err := db.Create(&payout).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create payout",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(payout)
}

// GetPayouts lists payouts, filterable by ?employee_id= and ?month=YYYY-MM,
// with a running total for the selection.
func GetPayouts(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	q := db.Model(&models.Payout{})
	if v := strings.TrimSpace(c.Query("employee_id")); v != "" {
		q = q.Where("employee_id = ?", v)
	}
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		if !utils.ValidMonth(month) {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		from, _ := time.Parse("2006-01", month)
		q = q.Where("date >= ? AND date < ?", from, from.AddDate(0, 1, 0))
	}

	var payouts []models.Payout
	if err := q.Order("date DESC").Find(&payouts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list payouts"})
	}

	var total float64
	for i := range payouts {
		total += payouts[i].Amount
	}
	return c.JSON(fiber.Map{
		"payouts": payouts,
		"total":   utils.Round2(total),
	})
}

func DeletePayout(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.Payout{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete payout"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payout not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
