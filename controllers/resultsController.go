package controllers

import (
	"strings"

	"firmanager-backend/database"
	"firmanager-backend/models"
	"firmanager-backend/services"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GetResults computes the monthly ledgers (internal payroll, commission
// payroll, company revenue, summary) for ?month=YYYY-MM. All collections are
// loaded inside the request transaction, so the three ledgers always see one
// consistent snapshot.
func GetResults(c *fiber.Ctx) error {
	month := strings.TrimSpace(c.Query("month"))
	if !utils.ValidMonth(month) {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var ds services.Dataset
	if err := db.Order("created_at").Find(&ds.Employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load employees"})
	}
	if err := db.Find(&ds.Customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load customers"})
	}
	if err := db.Find(&ds.Services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load services"})
	}
	if err := db.Order("created_at").Find(&ds.SupplierRates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load supplier rates"})
	}
	if err := db.Find(&ds.WorkOrders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load work orders"})
	}
	if err := db.Find(&ds.InternalOrders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load internal orders"})
	}

	return c.JSON(services.ComputeMonthlyResults(month, ds))
}

// GetDashboard returns the counters and indicators the landing page shows.
func GetDashboard(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var customers, employees, products, routes int64
	db.Model(&models.Customer{}).Count(&customers)
	db.Model(&models.Employee{}).Count(&employees)
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.Route{}).Count(&routes)

	var planned, completed int64
	db.Model(&models.WorkOrder{}).Where("status = ?", models.StatusPlanned).Count(&planned)
	db.Model(&models.WorkOrder{}).Where("status = ?", models.StatusCompleted).Count(&completed)

	var openIncidents int64
	db.Model(&models.Incident{}).Where("status <> ?", "closed").Count(&openIncidents)

	// Hour/km volumes per order type over completed orders.
	type orderAgg struct {
		OrderType  string  `json:"order_type"`
		Orders     int64   `json:"orders"`
		WorkHours  float64 `json:"work_hours"`
		DriveHours float64 `json:"drive_hours"`
		DrivenKm   float64 `json:"driven_km"`
	}
	var byType []orderAgg
	db.Model(&models.WorkOrder{}).
		Select("order_type, COUNT(*) AS orders, COALESCE(SUM(work_hours),0) AS work_hours, COALESCE(SUM(drive_hours),0) AS drive_hours, COALESCE(SUM(driven_km),0) AS driven_km").
		Where("status = ?", models.StatusCompleted).
		Group("order_type").
		Scan(&byType)

	return c.JSON(fiber.Map{
		"customers":        customers,
		"employees":        employees,
		"products":         products,
		"routes":           routes,
		"planned_orders":   planned,
		"completed_orders": completed,
		"open_incidents":   openIncidents,
		"by_order_type":    byType,
	})
}
