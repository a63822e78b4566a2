package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetSDGGoals(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	goals := []models.SDGGoal{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Order("number ASC").
		Find(&goals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SDG goals",
		})
	}

	return c.JSON(goals)
}

func GetSDGGoal(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid SDG goal ID",
		})
	}

	var goal models.SDGGoal
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Preload("Targets").
		First(&goal, "id = ?", goalID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "SDG goal not found",
		})
	}

	return c.JSON(goal)
}

func CreateSDGGoal(c *fiber.Ctx) error {
	var req models.CreateSDGGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Number < 1 || req.Number > 17 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Goal number must be between 1 and 17",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	goal := models.SDGGoal{
		Number:         req.Number,
		Title:          req.Title,
		ShortenedTitle: req.ShortenedTitle,
		Color:          req.Color,
		Description:    req.Description,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Goal number already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func GetSDGTargets(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	targets := []models.SDGTarget{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Preload("Goal").
		Order("target_number ASC").
		Find(&targets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SDG targets",
		})
	}

	return c.JSON(targets)
}

// GetSDGTargetsByGoal lists the targets of a single goal, given by the
// goal_id query parameter.
func GetSDGTargetsByGoal(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	goalID := c.Query("goal_id")
	if goalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "goal_id parameter is required",
		})
	}
	id, err := uuid.Parse(goalID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal_id parameter",
		})
	}

	targets := []models.SDGTarget{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Preload("Goal").
		Where("goal_id = ?", id).
		Order("target_number ASC").
		Find(&targets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SDG targets",
		})
	}

	return c.JSON(targets)
}

func CreateSDGTarget(c *fiber.Ctx) error {
	var req models.CreateSDGTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.TargetNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target number is required",
		})
	}

	var goal models.SDGGoal
	if err := database.DB.First(&goal, "id = ?", req.GoalID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid SDG goal ID",
		})
	}

	target := models.SDGTarget{
		GoalID:       goal.ID,
		TargetNumber: req.TargetNumber,
		Title:        req.Title,
		Description:  req.Description,
	}

	if err := database.DB.Create(&target).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Target already exists for this goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(target)
}

func GetSDGIndicators(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	indicators := []models.SDGIndicator{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Order("indicator_number ASC").
		Find(&indicators).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch SDG indicators",
		})
	}

	return c.JSON(indicators)
}
