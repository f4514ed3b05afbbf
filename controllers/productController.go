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

type createProductDTO struct {
	ProductNumber string  `json:"product_number" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	CustomerPrice float64 `json:"customer_price" validate:"gte=0"`
	InStock       int     `json:"in_stock" validate:"gte=0"`
	ImageURL      string  `json:"image_url"`
}

func CreateProduct(c *fiber.Ctx) error {
	var dto createProductDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if err := middlewares.CheckRecordLimit(c, "products", count); err != nil {
		return err
	}

	product := models.Product{
		ProductNumber: dto.ProductNumber,
		Name:          dto.Name,
		Description:   dto.Description,
		Category:      dto.Category,
		CustomerPrice: dto.CustomerPrice,
		InStock:       dto.InStock,
		ImageURL:      dto.ImageURL,
	}
	if err := db.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetProducts lists the catalogue, filterable by ?category= and ?search=.
func GetProducts(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	q := db.Model(&models.Product{})
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		q = q.Where("category = ?", v)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR product_number ILIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("product_number").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

type updateProductDTO struct {
	ProductNumber *string  `json:"product_number"`
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	CustomerPrice *float64 `json:"customer_price"`
	InStock       *int     `json:"in_stock"`
	ImageURL      *string  `json:"image_url"`
}

func UpdateProduct(c *fiber.Ctx) error {
	var dto updateProductDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	var product models.Product
	if err := db.Where("id = ?", c.Params("id")).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(product)
	}
	if err := db.Model(&product).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

func DeleteProduct(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	res := db.Where("id = ?", c.Params("id")).Delete(&models.Product{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not delete product"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// ImportProductsExcel upserts products from a spreadsheet keyed on product
// number. Columns: product number, name, description, category, price,
// stock.
func ImportProductsExcel(c *fiber.Ctx) error {
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

		price, _ := strconv.ParseFloat(strings.ReplaceAll(cell(row, 4), ",", "."), 64)
		stock, _ := strconv.Atoi(cell(row, 5))

		var existing models.Product
		if err := db.Where("product_number = ?", number).First(&existing).Error; err == nil {
			updates := map[string]any{
				"name":           cell(row, 1),
				"description":    cell(row, 2),
				"category":       cell(row, 3),
				"customer_price": utils.Round2(price),
				"in_stock":       stock,
			}
			if e := db.Model(&existing).Updates(updates).Error; e != nil {
				errCount++
				errMsgs = append(errMsgs, fmt.Sprintf("row %d: %v", rowNum, e))
				continue
			}
			updated++
			continue
		}

		product := models.Product{
			ProductNumber: number,
			Name:          cell(row, 1),
			Description:   cell(row, 2),
			Category:      cell(row, 3),
			CustomerPrice: utils.Round2(price),
			InStock:       stock,
		}
		if e := db.Create(&product).Error; e != nil {
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
