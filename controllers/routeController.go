package controllers

import (
	"strings"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/services"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// Route creation takes pasted facility numbers, an area selection, or
// explicit customer ids. The first non-empty selector wins; an empty
// resulting selection is a 422.
type createRouteDTO struct {
	Date            string          `json:"date" validate:"required"`
	FacilityNumbers string          `json:"facility_numbers"`
	Areas           []services.Area `json:"areas"`
	CustomerIds     []string        `json:"customer_ids"`
}

func CreateRoute(c *fiber.Ctx) error {
	var dto createRouteDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	date, err := utils.ParseDate(dto.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var routeCount int64
	db.Model(&models.Route{}).Count(&routeCount)
	if err := middlewares.CheckRecordLimit(c, "routes", routeCount); err != nil {
		return err
	}

	var customers []models.Customer
	if err := db.Order("anleggsnr").Find(&customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load customers"})
	}

	var selected []models.Customer
	var unmatched []string
	if strings.TrimSpace(dto.FacilityNumbers) != "" {
		tokens := services.SplitFacilityNumbers(dto.FacilityNumbers)
		if len(tokens) == 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": services.ErrNoFacilityNumbers.Error(),
			})
		}
		selected, unmatched = services.MatchFacilityNumbers(tokens, customers)
	} else if len(dto.Areas) > 0 {
		selected = services.CustomersInAreas(customers, dto.Areas)
	} else if len(dto.CustomerIds) > 0 {
		wanted := make(map[string]bool, len(dto.CustomerIds))
		for _, id := range dto.CustomerIds {
			wanted[id] = true
		}
		for i := range customers {
			if wanted[customers[i].Id] {
				selected = append(selected, customers[i])
			}
		}
	} else {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "provide facility_numbers, areas or customer_ids",
		})
	}

	if len(selected) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message":   services.ErrNoCustomersSelected.Error(),
			"unmatched": unmatched,
		})
	}

	ordered := services.OptimizeStops(selected)

	route := models.Route{
		Date:      date,
		Stops:     services.StopList(ordered),
		Optimized: true,
	}
	if err := db.Create(&route).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create route",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"route":     route,
		"stops":     ordered,
		"unmatched": unmatched,
	})
}

func GetRoutes(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var routes []models.Route
	if err := db.Order("date DESC").Find(&routes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list routes"})
	}
	return c.JSON(fiber.Map{"routes": routes})
}

// GetRoute returns a stored route with its stops resolved back to customers,
// preserving stop order. Stops whose customer has since been deleted come
// back as bare facility numbers in "missing".
func GetRoute(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var route models.Route
	if err := db.Where("id = ?", c.Params("id")).First(&route).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "route not found"})
	}

	var customers []models.Customer
	if err := db.Where("anleggsnr IN ?", []string(route.Stops)).Find(&customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not load stops"})
	}
	byNr := make(map[string]models.Customer, len(customers))
	for _, customer := range customers {
		byNr[customer.Anleggsnr] = customer
	}

	stops := make([]models.Customer, 0, len(route.Stops))
	var missing []string
	for _, nr := range route.Stops {
		if customer, ok := byNr[nr]; ok {
			stops = append(stops, customer)
		} else {
			missing = append(missing, nr)
		}
	}

	return c.JSON(fiber.Map{
		"route":   route,
		"stops":   stops,
		"missing": missing,
	})
}

func DeleteRoute(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.Route{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete route"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "route not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
