package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type createServiceDTO struct {
	ServiceNumber string `json:"service_number" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Vendor        string `json:"vendor"`
	RateCardId    string `json:"rate_card_id"`

	FixedPrice    float64 `json:"fixed_price" validate:"gte=0"`
	ExtraTier1    float64 `json:"extra_tier1" validate:"gte=0"`
	ExtraTier2    float64 `json:"extra_tier2" validate:"gte=0"`
	ExtraTier3    float64 `json:"extra_tier3" validate:"gte=0"`
	ExtraTier4    float64 `json:"extra_tier4" validate:"gte=0"`
	DriveTimeRate float64 `json:"drive_time_rate" validate:"gte=0"`
	KmRate        float64 `json:"km_rate" validate:"gte=0"`
}

func CreateService(c *fiber.Ctx) error {
	var dto createServiceDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	service := models.Service{
		ServiceNumber: dto.ServiceNumber,
		Name:          dto.Name,
		Description:   dto.Description,
		Vendor:        dto.Vendor,
		RateCardId:    dto.RateCardId,
		FixedPrice:    dto.FixedPrice,
		ExtraTier1:    dto.ExtraTier1,
		ExtraTier2:    dto.ExtraTier2,
		ExtraTier3:    dto.ExtraTier3,
		ExtraTier4:    dto.ExtraTier4,
		DriveTimeRate: dto.DriveTimeRate,
		KmRate:        dto.KmRate,
	}
	if err := db.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create service",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

func GetServices(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var services []models.Service
	if err := db.Order("service_number").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list services"})
	}
	return c.JSON(fiber.Map{"services": services})
}

type updateServiceDTO struct {
	ServiceNumber *string `json:"service_number"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Vendor        *string `json:"vendor"`
	RateCardId    *string `json:"rate_card_id"`

	FixedPrice    *float64 `json:"fixed_price"`
	ExtraTier1    *float64 `json:"extra_tier1"`
	ExtraTier2    *float64 `json:"extra_tier2"`
	ExtraTier3    *float64 `json:"extra_tier3"`
	ExtraTier4    *float64 `json:"extra_tier4"`
	DriveTimeRate *float64 `json:"drive_time_rate"`
	KmRate        *float64 `json:"km_rate"`
}

func UpdateService(c *fiber.Ctx) error {
	var dto updateServiceDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var service models.Service
	if err := db.Where("id = ?", c.Params("id")).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "service not found"})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(service)
	}
	if err := db.Model(&service).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update service",
			"error":   err.Error(),
		})
	}
	return c.JSON(service)
}

func DeleteService(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.Service{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete service"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "service not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type supplierRateDTO struct {
	Name          string  `json:"name" validate:"required"`
	WorkHourRate  float64 `json:"work_hour_rate" validate:"gte=0"`
	DriveHourRate float64 `json:"drive_hour_rate" validate:"gte=0"`
	KmRate        float64 `json:"km_rate" validate:"gte=0"`
}

func CreateSupplierRate(c *fiber.Ctx) error {
	var dto supplierRateDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	rate := models.SupplierRate{
		Name:          dto.Name,
		WorkHourRate:  dto.WorkHourRate,
		DriveHourRate: dto.DriveHourRate,
		KmRate:        dto.KmRate,
	}
	if err := db.Create(&rate).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create supplier rate",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rate)
}

// GetSupplierRates lists rate cards in creation order. The results engine
// falls back to the first card when a service has no linked card, so the
// ordering here mirrors that.
func GetSupplierRates(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var rates []models.SupplierRate
	if err := db.Order("created_at").Find(&rates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list supplier rates"})
	}
	return c.JSON(fiber.Map{"supplier_rates": rates})
}

type updateSupplierRateDTO struct {
	Name          *string  `json:"name"`
	WorkHourRate  *float64 `json:"work_hour_rate"`
	DriveHourRate *float64 `json:"drive_hour_rate"`
	KmRate        *float64 `json:"km_rate"`
}

func UpdateSupplierRate(c *fiber.Ctx) error {
	var dto updateSupplierRateDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var rate models.SupplierRate
	if err := db.Where("id = ?", c.Params("id")).First(&rate).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "supplier rate not found"})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(rate)
	}
	if err := db.Model(&rate).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update supplier rate",
			"error":   err.Error(),
		})
	}
	return c.JSON(rate)
}

// ImportServicesExcel upserts the service price list from a spreadsheet,
// keyed on service number. Columns: service number, name, description,
// vendor, fixed price, tier 1-4, drive time rate, km rate.
func ImportServicesExcel(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "only .xlsx files are supported"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to open file"})
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to read Excel file"})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "no sheets found in Excel file"})
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to read rows"})
	}
	if len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file must contain a header and at least one data row"})
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	created, updated, errCount := 0, 0, 0
	var errMsgs []string
	for i, row := range rows[1:] {
		rowNum := i + 2
		number := cell(row, 0)
		if number == "" {
			continue
		}

		prices := make([]float64, 7)
		for j := range prices {
			v, _ := strconv.ParseFloat(strings.ReplaceAll(cell(row, 4+j), ",", "."), 64)
			prices[j] = utils.Round2(v)
		}

		var existing models.Service
		if err := db.Where("service_number = ?", number).First(&existing).Error; err == nil {
			updates := map[string]any{
				"name":            cell(row, 1),
				"description":     cell(row, 2),
				"vendor":          cell(row, 3),
				"fixed_price":     prices[0],
				"extra_tier1":     prices[1],
				"extra_tier2":     prices[2],
				"extra_tier3":     prices[3],
				"extra_tier4":     prices[4],
				"drive_time_rate": prices[5],
				"km_rate":         prices[6],
			}
			if e := db.Model(&existing).Updates(updates).Error; e != nil {
				errCount++
				errMsgs = append(errMsgs, fmt.Sprintf("row %d: %v", rowNum, e))
				continue
			}
			updated++
			continue
		}

		service := models.Service{
			ServiceNumber: number,
			Name:          cell(row, 1),
			Description:   cell(row, 2),
			Vendor:        cell(row, 3),
			FixedPrice:    prices[0],
			ExtraTier1:    prices[1],
			ExtraTier2:    prices[2],
			ExtraTier3:    prices[3],
			ExtraTier4:    prices[4],
			DriveTimeRate: prices[5],
			KmRate:        prices[6],
		}
		if e := db.Create(&service).Error; e != nil {
			errCount++
			errMsgs = append(errMsgs, fmt.Sprintf("row %d: %v", rowNum, e))
			continue
		}
		created++
	}

	return c.JSON(fiber.Map{
		"total_rows":     len(rows) - 1,
		"created":        created,
		"updated":        updated,
		"error_count":    errCount,
		"error_messages": errMsgs,
	})
}

func DeleteSupplierRate(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.SupplierRate{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete supplier rate"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "supplier rate not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
