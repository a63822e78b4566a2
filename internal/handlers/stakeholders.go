package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetStakeholderCategories(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	categories := []models.StakeholderCategory{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stakeholder categories",
		})
	}

	return c.JSON(categories)
}

func CreateStakeholderCategory(c *fiber.Ctx) error {
	var req models.CreateStakeholderCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	category := models.StakeholderCategory{Name: req.Name}
	if err := database.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create stakeholder category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func GetProjectStakeholders(c *fiber.Ctx) error {
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

	stakeholders := []models.ProjectStakeholder{}
	if err := database.DB.Where("project_id = ?", project.ID).
		Preload("Category").
		Find(&stakeholders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stakeholders",
		})
	}

	return c.JSON(stakeholders)
}

func AddProjectStakeholder(c *fiber.Ctx) error {
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

	var req models.AddProjectStakeholderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var category models.StakeholderCategory
	if err := database.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid stakeholder category ID",
		})
	}

	stakeholder := models.ProjectStakeholder{
		ProjectID:  project.ID,
		CategoryID: category.ID,
	}

	if err := database.DB.Create(&stakeholder).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add stakeholder",
		})
	}

	database.DB.Preload("Category").First(&stakeholder, "id = ?", stakeholder.ID)
	return c.Status(fiber.StatusCreated).JSON(stakeholder)
}

func RemoveProjectStakeholder(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}
	stakeholderID, err := uuid.Parse(c.Params("stakeholderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid stakeholder ID",
		})
	}

	var project models.Project
	if err := database.DB.Scopes(authz.ProjectScope(caller)).
		First(&project, "projects.id = ?", projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	var stakeholder models.ProjectStakeholder
	if err := database.DB.Where("id = ? AND project_id = ?", stakeholderID, project.ID).
		First(&stakeholder).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Stakeholder not found",
		})
	}

	if err := database.DB.Delete(&stakeholder).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove stakeholder",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
