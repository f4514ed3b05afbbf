package controllers

import (
	"time"

	"firmanager-backend/database"
	"firmanager-backend/middlewares"
	"firmanager-backend/models"
	"firmanager-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// HSE endpoints. The whole group is mounted behind the hms license feature.

type riskAssessmentDTO struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Severity    string `json:"severity" validate:"omitempty,oneof=low medium high"`
	Responsible string `json:"responsible"`
}

func CreateRiskAssessment(c *fiber.Ctx) error {
	var dto riskAssessmentDTO
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

	severity := dto.Severity
	if severity == "" {
		severity = "medium"
	}
	assessment := models.RiskAssessment{
		Title:       dto.Title,
		Description: dto.Description,
		Date:        date,
		Severity:    severity,
		Status:      "active",
		Responsible: dto.Responsible,
	}
	if err := db.Create(&assessment).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create risk assessment",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(assessment)
}

func GetRiskAssessments(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	var assessments []models.RiskAssessment
	if err := db.Order("date DESC").Find(&assessments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list risk assessments"})
	}
	return c.JSON(fiber.Map{"risk_assessments": assessments})
}

type incidentDTO struct {
	Date        string `json:"date" validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=accident near_miss observation"`
	Severity    string `json:"severity" validate:"omitempty,oneof=low medium high"`
}

func CreateIncident(c *fiber.Ctx) error {
	var dto incidentDTO
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

	incidentType := dto.Type
	if incidentType == "" {
		incidentType = "accident"
	}
	severity := dto.Severity
	if severity == "" {
		severity = "low"
	}
	incident := models.Incident{
		Date:        date,
		Description: dto.Description,
		Type:        incidentType,
		Status:      "open",
		Severity:    severity,
	}
	if err := db.Create(&incident).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create incident",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(incident)
}

func GetIncidents(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	var incidents []models.Incident
	if err := db.Order("date DESC").Find(&incidents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list incidents"})
	}
	return c.JSON(fiber.Map{"incidents": incidents})
}

type trainingDTO struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	ExpiresAt    string   `json:"expires_at"`
	Participants []string `json:"participants"`
}

func CreateTraining(c *fiber.Ctx) error {
	var dto trainingDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	date, err := utils.ParseDate(dto.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date")
	}
	var expiresAt *time.Time
	if dto.ExpiresAt != "" {
		t, err := utils.ParseDate(dto.ExpiresAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid expires_at")
		}
		expiresAt = &t
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	training := models.Training{
		Name:         dto.Name,
		Description:  dto.Description,
		Date:         date,
		ExpiresAt:    expiresAt,
		Status:       "active",
		Participants: dto.Participants,
	}
	if err := db.Create(&training).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create training",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(training)
}

func GetTrainings(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	var trainings []models.Training
	if err := db.Order("date DESC").Find(&trainings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list trainings"})
	}

	// Flag expired certifications on the way out.
	now := time.Now()
	for i := range trainings {
		if trainings[i].ExpiresAt != nil && now.After(*trainings[i].ExpiresAt) {
			trainings[i].Status = "expired"
		}
	}
	return c.JSON(fiber.Map{"trainings": trainings})
}

type equipmentDTO struct {
	Name        string `json:"name" validate:"required"`
	ControlDate string `json:"control_date" validate:"required"`
	NextControl string `json:"next_control" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=ok needs_control retired"`
}

func CreateEquipment(c *fiber.Ctx) error {
	var dto equipmentDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	controlDate, err := utils.ParseDate(dto.ControlDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid control_date")
	}
	nextControl, err := utils.ParseDate(dto.NextControl)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid next_control")
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	status := dto.Status
	if status == "" {
		status = "ok"
	}
	equipment := models.Equipment{
		Name:        dto.Name,
		ControlDate: controlDate,
		NextControl: nextControl,
		Status:      status,
	}
	if err := db.Create(&equipment).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create equipment",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(equipment)
}

func GetEquipment(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	var equipment []models.Equipment
	if err := db.Order("next_control").Find(&equipment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not list equipment"})
	}
	return c.JSON(fiber.Map{"equipment": equipment})
}
