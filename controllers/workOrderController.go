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

type createWorkOrderDTO struct {
	CustomerId  string  `json:"customer_id" validate:"required,uuid4"`
	EmployeeId  string  `json:"employee_id" validate:"required,uuid4"`
	Date        string  `json:"date" validate:"required"`
	OrderType   string  `json:"order_type" validate:"required,oneof=service installation extra"`
	Status      string  `json:"status" validate:"omitempty,oneof=planned completed cancelled"`
	Description string  `json:"description"`
	WorkHours   float64 `json:"work_hours" validate:"gte=0"`
	DriveHours  float64 `json:"drive_hours" validate:"gte=0"`
	DrivenKm    float64 `json:"driven_km" validate:"gte=0"`
}

func CreateWorkOrder(c *fiber.Ctx) error {
	var dto createWorkOrderDTO
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

	var customerCount int64
	db.Model(&models.Customer{}).Where("id = ?", dto.CustomerId).Count(&customerCount)
	if customerCount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "customer does not exist"})
	}
	var employeeCount int64
	db.Model(&models.Employee{}).Where("id = ?", dto.EmployeeId).Count(&employeeCount)
	if employeeCount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "employee does not exist"})
	}

	status := dto.Status
	if status == "" {
		status = models.StatusPlanned
	}

	order := models.WorkOrder{
		CustomerId:  dto.CustomerId,
		EmployeeId:  dto.EmployeeId,
		Date:        date,
		OrderType:   dto.OrderType,
		Status:      status,
		Description: dto.Description,
		WorkHours:   dto.WorkHours,
		DriveHours:  dto.DriveHours,
		DrivenKm:    dto.DrivenKm,
	}
	if err := db.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create work order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetWorkOrders lists orders, filterable by ?status=, ?order_type=,
// ?employee_id=, ?customer_id= and ?month=YYYY-MM.
func GetWorkOrders(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	q := db.Model(&models.WorkOrder{})
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("order_type")); v != "" {
		q = q.Where("order_type = ?", v)
	}
	if v := strings.TrimSpace(c.Query("employee_id")); v != "" {
		q = q.Where("employee_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("customer_id")); v != "" {
		q = q.Where("customer_id = ?", v)
	}
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		if !utils.ValidMonth(month) {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		from, _ := time.Parse("2006-01", month)
		q = q.Where("date >= ? AND date < ?", from, from.AddDate(0, 1, 0))
	}

	var orders []models.WorkOrder
	if err := q.Order("date DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list work orders"})
	}
	return c.JSON(fiber.Map{"work_orders": orders})
}

func GetWorkOrder(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var order models.WorkOrder
	if err := db.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "work order not found"})
	}
	return c.JSON(order)
}

type updateWorkOrderDTO struct {
	CustomerId  *string  `json:"customer_id"`
	EmployeeId  *string  `json:"employee_id"`
	Date        *string  `json:"date"`
	OrderType   *string  `json:"order_type"`
	Status      *string  `json:"status"`
	Description *string  `json:"description"`
	WorkHours   *float64 `json:"work_hours"`
	DriveHours  *float64 `json:"drive_hours"`
	DrivenKm    *float64 `json:"driven_km"`
}

func UpdateWorkOrder(c *fiber.Ctx) error {
	var dto updateWorkOrderDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	if dto.OrderType != nil {
		switch *dto.OrderType {
		case models.OrderTypeService, models.OrderTypeInstallation, models.OrderTypeExtra:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "invalid order_type")
		}
	}
	if dto.Status != nil {
		switch *dto.Status {
		case models.StatusPlanned, models.StatusCompleted, models.StatusCancelled:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var order models.WorkOrder
	if err := db.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "work order not found"})
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
			"message": "Could not update work order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

func DeleteWorkOrder(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.WorkOrder{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete work order"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "work order not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
