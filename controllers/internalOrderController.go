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

type createInternalOrderDTO struct {
	Department  string  `json:"department" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	EmployeeId  string  `json:"employee_id" validate:"required,uuid4"`
	Description string  `json:"description" validate:"required"`
	WorkHours   float64 `json:"work_hours" validate:"gte=0"`
	TaskType    string  `json:"task_type"`
	Comment     string  `json:"comment"`
}

func CreateInternalOrder(c *fiber.Ctx) error {
	var dto createInternalOrderDTO
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

	taskType := dto.TaskType
	if taskType == "" {
		taskType = "office"
	}

	order := models.InternalOrder{
		Department:  dto.Department,
		Date:        date,
		EmployeeId:  dto.EmployeeId,
		Description: dto.Description,
		WorkHours:   dto.WorkHours,
		TaskType:    taskType,
		Comment:     dto.Comment,
	}
	if err := db.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create internal order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetInternalOrders lists internal orders, filterable by ?employee_id= and
// ?month=YYYY-MM.
func GetInternalOrders(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	q := db.Model(&models.InternalOrder{})
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

	var orders []models.InternalOrder
	if err := q.Order("date DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list internal orders"})
	}
	return c.JSON(fiber.Map{"internal_orders": orders})
}

type updateInternalOrderDTO struct {
	Department  *string  `json:"department"`
	Date        *string  `json:"date"`
	EmployeeId  *string  `json:"employee_id"`
	Description *string  `json:"description"`
	WorkHours   *float64 `json:"work_hours"`
	TaskType    *string  `json:"task_type"`
	Comment     *string  `json:"comment"`
}

func UpdateInternalOrder(c *fiber.Ctx) error {
	var dto updateInternalOrderDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var order models.InternalOrder
	if err := db.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "internal order not found"})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if dto.Date != nil {
		date, err := utils.ParseDate(*dto.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date")
		}
		updates["date"] = date
	}
	if len(updates) == 0 {
		return c.JSON(order)
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update internal order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

func DeleteInternalOrder(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.InternalOrder{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete internal order"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "internal order not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
