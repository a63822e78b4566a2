package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetTimelines(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	timelines := []models.ProjectTimeline{}
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_timelines")).
		Find(&timelines).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch timelines",
		})
	}

	return c.JSON(timelines)
}

func GetTimeline(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	timelineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timeline ID",
		})
	}

	var timeline models.ProjectTimeline
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_timelines")).
		First(&timeline, "project_timelines.id = ?", timelineID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timeline not found",
		})
	}

	return c.JSON(timeline)
}

func UpdateTimeline(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	timelineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timeline ID",
		})
	}

	var timeline models.ProjectTimeline
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_timelines")).
		First(&timeline, "project_timelines.id = ?", timelineID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timeline not found",
		})
	}

	var req models.UpdateTimelineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.StartDate != nil {
		timeline.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		timeline.EndDate = *req.EndDate
	}
	if req.TotalBudget != nil {
		timeline.TotalBudget = *req.TotalBudget
	}

	if err := database.DB.Save(&timeline).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update timeline",
		})
	}

	return c.JSON(timeline)
}

func DeleteTimeline(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	timelineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timeline ID",
		})
	}

	var timeline models.ProjectTimeline
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_timelines")).
		First(&timeline, "project_timelines.id = ?", timelineID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timeline not found",
		})
	}

	if err := database.DB.Delete(&timeline).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete timeline",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
