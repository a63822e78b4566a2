package handlers

import (
	"errors"

	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetDrafts(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	drafts := []models.ProjectDraft{}
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_drafts")).
		Find(&drafts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch drafts",
		})
	}

	return c.JSON(drafts)
}

func GetDraft(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	draftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft ID",
		})
	}

	var draft models.ProjectDraft
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_drafts")).
		First(&draft, "project_drafts.id = ?", draftID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Draft not found",
		})
	}

	return c.JSON(draft)
}

func CreateDraft(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var req models.CreateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var project models.Project
	if err := database.DB.Scopes(authz.ProjectScope(caller)).
		First(&project, "projects.id = ?", req.ProjectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	step := req.CurrentStep
	if step == 0 {
		step = 1
	}

	draft := models.ProjectDraft{
		ProjectID:   project.ID,
		CurrentStep: step,
	}

	if err := database.DB.Create(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Draft already exists for this project",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create draft",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(draft)
}

func UpdateDraft(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	draftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft ID",
		})
	}

	var draft models.ProjectDraft
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_drafts")).
		First(&draft, "project_drafts.id = ?", draftID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Draft not found",
		})
	}

	var req models.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.CurrentStep != nil {
		draft.CurrentStep = *req.CurrentStep
	}

	// Save also refreshes last_saved via autoUpdateTime.
	if err := database.DB.Save(&draft).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update draft",
		})
	}

	return c.JSON(draft)
}

func DeleteDraft(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	draftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft ID",
		})
	}

	var draft models.ProjectDraft
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_drafts")).
		First(&draft, "project_drafts.id = ?", draftID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Draft not found",
		})
	}

	if err := database.DB.Delete(&draft).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete draft",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func FinalizeDraft(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	draftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft ID",
		})
	}

	var draft models.ProjectDraft
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "project_drafts")).
		First(&draft, "project_drafts.id = ?", draftID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Draft not found",
		})
	}

	draft.IsFinalized = true
	if err := database.DB.Save(&draft).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to finalize draft",
		})
	}

	return c.JSON(fiber.Map{"status": "project finalized"})
}
