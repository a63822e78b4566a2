package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetMilestones(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	milestones := []models.ProjectMilestone{}
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_milestones")).
		Order("due_date ASC").
		Find(&milestones).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch milestones",
		})
	}

	return c.JSON(milestones)
}

func GetMilestone(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	milestoneID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid milestone ID",
		})
	}

	var milestone models.ProjectMilestone
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_milestones")).
		First(&milestone, "project_milestones.id = ?", milestoneID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Milestone not found",
		})
	}

	return c.JSON(milestone)
}

func UpdateMilestone(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	milestoneID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid milestone ID",
		})
	}

	var milestone models.ProjectMilestone
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_milestones")).
		First(&milestone, "project_milestones.id = ?", milestoneID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Milestone not found",
		})
	}

	var req models.UpdateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		milestone.Title = *req.Title
	}
	if req.Description != nil {
		milestone.Description = *req.Description
	}
	if req.DueDate != nil {
		milestone.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		milestone.Completed = *req.Completed
	}

	if err := database.DB.Save(&milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update milestone",
		})
	}

	return c.JSON(milestone)
}

func DeleteMilestone(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	milestoneID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid milestone ID",
		})
	}

	var milestone models.ProjectMilestone
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_milestones")).
		First(&milestone, "project_milestones.id = ?", milestoneID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Milestone not found",
		})
	}

	if err := database.DB.Delete(&milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete milestone",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
