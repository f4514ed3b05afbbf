package controllers

import (
	"fmt"
	"strings"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type createCustomerDTO struct {
	Anleggsnr       string `json:"anleggsnr" validate:"required"`
	CustomerNumber  string `json:"customer_number" validate:"required"`
	Name            string `json:"name" validate:"required"`
	TypeNumber      string `json:"type_number"`
	TypeName        string `json:"type_name"`
	Municipality    string `json:"municipality" validate:"required"`
	Address         string `json:"address" validate:"required"`
	PostalCode      string `json:"postal_code" validate:"required"`
	City            string `json:"city" validate:"required"`
	ServiceInterval string `json:"service_interval"`
	Week            string `json:"week"`
	ServiceManager  string `json:"service_manager"`
	Phone1          string `json:"phone1"`
	Phone2          string `json:"phone2"`
	Email           string `json:"email"`
	StartDate       string `json:"start_date"`
	ControlUnit     string `json:"control_unit"`
	Comment         string `json:"comment"`
	CustomerInfo    string `json:"customer_info"`
	ServiceNumber   string `json:"service_number"`
}

func CreateCustomer(c *fiber.Ctx) error {
	var dto createCustomerDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if err := middlewares.CheckRecordLimit(c, "customers", count); err != nil {
		return err
	}

	customer := models.Customer{
		Anleggsnr:       dto.Anleggsnr,
		CustomerNumber:  dto.CustomerNumber,
		Name:            dto.Name,
		TypeNumber:      dto.TypeNumber,
		TypeName:        dto.TypeName,
		Municipality:    dto.Municipality,
		Address:         dto.Address,
		PostalCode:      dto.PostalCode,
		City:            dto.City,
		ServiceInterval: dto.ServiceInterval,
		Week:            dto.Week,
		ServiceManager:  dto.ServiceManager,
		Phone1:          dto.Phone1,
		Phone2:          dto.Phone2,
		Email:           dto.Email,
		StartDate:       dto.StartDate,
		ControlUnit:     dto.ControlUnit,
		Comment:         dto.Comment,
		CustomerInfo:    dto.CustomerInfo,
		ServiceNumber:   dto.ServiceNumber,
	}
	if err := db.Create(&customer).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetCustomers lists the register, optionally filtered by ?search= across
// name, facility number, customer number, address and city, and capped by
// ?limit= (default 500).
func GetCustomers(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	q := db.Model(&models.Customer{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"name ILIKE ? OR anleggsnr ILIKE ? OR customer_number ILIKE ? OR address ILIKE ? OR city ILIKE ?",
			like, like, like, like, like,
		)
	}
	limit := utils.ParseIntDefault(c.Query("limit"), 500)

	var customers []models.Customer
	if err := q.Order("anleggsnr").Limit(limit).Find(&customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list customers"})
	}
	return c.JSON(fiber.Map{
		"customers": customers,
		"count":     len(customers),
	})
}

func GetCustomer(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var customer models.Customer
	if err := db.Where("id = ?", c.Params("id")).First(&customer).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}
	return c.JSON(customer)
}

type updateCustomerDTO struct {
	Anleggsnr       *string `json:"anleggsnr"`
	CustomerNumber  *string `json:"customer_number"`
	Name            *string `json:"name"`
	TypeNumber      *string `json:"type_number"`
	TypeName        *string `json:"type_name"`
	Municipality    *string `json:"municipality"`
	Address         *string `json:"address"`
	PostalCode      *string `json:"postal_code"`
	City            *string `json:"city"`
	ServiceInterval *string `json:"service_interval"`
	Week            *string `json:"week"`
	ServiceManager  *string `json:"service_manager"`
	Phone1          *string `json:"phone1"`
	Phone2          *string `json:"phone2"`
	Email           *string `json:"email"`
	StartDate       *string `json:"start_date"`
	ControlUnit     *string `json:"control_unit"`
	Comment         *string `json:"comment"`
	CustomerInfo    *string `json:"customer_info"`
	ServiceNumber   *string `json:"service_number"`
}

func UpdateCustomer(c *fiber.Ctx) error {
	var dto updateCustomerDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var customer models.Customer
	if err := db.Where("id = ?", c.Params("id")).First(&customer).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(customer)
	}
	if err := db.Model(&customer).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}

func DeleteCustomer(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.Customer{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete customer"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type customerImportResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	ErrorMessages []string `json:"error_messages"`
}

// ImportCustomersExcel replaces the whole customer register with the
// uploaded spreadsheet. Column order matches the export the field teams work
// from: anleggsnr, customer number, name, type number, type name,
// municipality, address, postal code, city, interval, week, manager, phone1,
// phone2, email, start date, control unit, comment, info.
func ImportCustomersExcel(c *fiber.Ctx) error {
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

	result := customerImportResult{TotalRows: len(rows) - 1, ErrorMessages: []string{}}

	// Full replace: the spreadsheet is the source of truth.
	if err := db.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to clear existing customers"})
	}

	seen := make(map[string]bool, len(rows))
	for i, row := range rows[1:] {
		rowNum := i + 2

		if cell(row, 0) == "" {
			result.SkippedCount++
			continue
		}
		anleggsnr := cell(row, 0)
		if seen[anleggsnr] {
			result.SkippedCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("row %d: duplicate anleggsnr %s", rowNum, anleggsnr))
			continue
		}
		seen[anleggsnr] = true

		customer := models.Customer{
			Anleggsnr:       anleggsnr,
			CustomerNumber:  cell(row, 1),
			Name:            cell(row, 2),
			TypeNumber:      cell(row, 3),
			TypeName:        cell(row, 4),
			Municipality:    cell(row, 5),
			Address:         cell(row, 6),
			PostalCode:      cell(row, 7),
			City:            cell(row, 8),
			ServiceInterval: cell(row, 9),
			Week:            cell(row, 10),
			ServiceManager:  cell(row, 11),
			Phone1:          cell(row, 12),
			Phone2:          cell(row, 13),
			Email:           cell(row, 14),
			StartDate:       cell(row, 15),
			ControlUnit:     cell(row, 16),
			Comment:         cell(row, 17),
			CustomerInfo:    cell(row, 18),
		}
		if err := db.Create(&customer).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.SuccessCount++
	}

	return c.JSON(result)
}

// cell reads a column defensively; excelize trims trailing empty cells from
// rows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
