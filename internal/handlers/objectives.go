package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetObjectives(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	objectives := []models.ProjectObjective{}
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_objectives")).
		Preload("Metrics").
		Order("project_objectives.created_at ASC").
		Find(&objectives).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch objectives",
		})
	}

	return c.JSON(objectives)
}

func GetObjective(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	objectiveID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid objective ID",
		})
	}

	var objective models.ProjectObjective
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_objectives")).
		Preload("Metrics").
		First(&objective, "project_objectives.id = ?", objectiveID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Objective not found",
		})
	}

	return c.JSON(objective)
}

func UpdateObjective(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	objectiveID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid objective ID",
		})
	}

	var objective models.ProjectObjective
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_objectives")).
		First(&objective, "project_objectives.id = ?", objectiveID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Objective not found",
		})
	}

	var req models.UpdateObjectiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Text != nil {
		objective.Text = *req.Text
	}

	if err := database.DB.Save(&objective).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update objective",
		})
	}

	return c.JSON(objective)
}

func DeleteObjective(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	objectiveID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid objective ID",
		})
	}

	var objective models.ProjectObjective
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_objectives")).
		First(&objective, "project_objectives.id = ?", objectiveID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Objective not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("objective_id = ?", objective.ID).Delete(&models.SuccessMetric{}).Error; err != nil {
			return err
		}
		return tx.Delete(&objective).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete objective",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AddObjectiveMetric(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	objectiveID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid objective ID",
		})
	}

	var objective models.ProjectObjective
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_objectives")).
		First(&objective, "project_objectives.id = ?", objectiveID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Objective not found",
		})
	}

	var req models.CreateMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	metric := models.SuccessMetric{
		ObjectiveID: objective.ID,
		Text:        req.Text,
	}

	if err := database.DB.Create(&metric).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create metric",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(metric)
}

func GetMetrics(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	metrics := []models.SuccessMetric{}
	if err := database.DB.Scopes(authz.MetricScope(caller)).
		Find(&metrics).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch metrics",
		})
	}

	return c.JSON(metrics)
}

func DeleteMetric(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	metricID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid metric ID",
		})
	}

	var metric models.SuccessMetric
	if err := database.DB.Scopes(authz.MetricScope(caller)).
		First(&metric, "success_metrics.id = ?", metricID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Metric not found",
		})
	}

	if err := database.DB.Delete(&metric).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete metric",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
