package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetRiskFactors(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	factors := []models.RiskFactor{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Order("label ASC").
		Find(&factors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch risk factors",
		})
	}

	return c.JSON(factors)
}

func CreateRiskFactor(c *fiber.Ctx) error {
	var req models.CreateRiskFactorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Label == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Label is required",
		})
	}

	factor := models.RiskFactor{Label: req.Label}
	if err := database.DB.Create(&factor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create risk factor",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(factor)
}

func GetProjectRisk(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var project models.Project
	if err := database.DB.Scopes(authz.ProjectScope(caller)).
		First(&project, "projects.id = ?", projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	var risk models.ProjectRisk
	if err := database.DB.Where("project_id = ?", project.ID).
		Preload("RiskFactors").
		First(&risk).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Risk assessment not found",
		})
	}

	return c.JSON(risk)
}

// UpsertProjectRisk sets the project's single risk assessment, creating it
// on first use.
func UpsertProjectRisk(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var project models.Project
	if err := database.DB.Scopes(authz.ProjectScope(caller)).
		First(&project, "projects.id = ?", projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	var req models.UpsertProjectRiskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !models.ValidRiskLevel(req.OverallLevel) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid risk level",
		})
	}

	var risk models.ProjectRisk
	if err := database.DB.Where("project_id = ?", project.ID).First(&risk).Error; err != nil {
		risk = models.ProjectRisk{ProjectID: project.ID}
	}
	risk.OverallLevel = req.OverallLevel

	if err := database.DB.Save(&risk).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save risk assessment",
		})
	}

	var factors []models.RiskFactor
	if len(req.RiskFactorIDs) > 0 {
		database.DB.Where("id IN ?", req.RiskFactorIDs).Find(&factors)
	}
	if err := database.DB.Model(&risk).Association("RiskFactors").Replace(factors); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update risk factors",
		})
	}

	database.DB.Preload("RiskFactors").First(&risk, "id = ?", risk.ID)
	return c.JSON(risk)
}
