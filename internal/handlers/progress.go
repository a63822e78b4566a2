package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetProgressReports(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	reports := []models.SDGProgressReport{}
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "sdg_progress_reports")).
		Preload("Target.Goal").
		Order("sdg_progress_reports.reported_at DESC").
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress reports",
		})
	}

	return c.JSON(reports)
}

func GetProgressReport(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress report ID",
		})
	}

	var report models.SDGProgressReport
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "sdg_progress_reports")).
		Preload("Target.Goal").
		First(&report, "sdg_progress_reports.id = ?", reportID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Progress report not found",
		})
	}

	return c.JSON(report)
}

// GetProjectProgress lists the SDG progress reports of one project.
func GetProjectProgress(c *fiber.Ctx) error {
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

	reports := []models.SDGProgressReport{}
	if err := database.DB.Where("project_id = ?", project.ID).
		Preload("Target.Goal").
		Order("reported_at DESC").
		Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch progress reports",
		})
	}

	return c.JSON(reports)
}

// UpsertProjectProgress creates or updates the report for (project, target).
// At most one report exists per pair; repeat submissions update in place.
func UpsertProjectProgress(c *fiber.Ctx) error {
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

	var req models.UpsertProgressReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var target models.SDGTarget
	if err := database.DB.First(&target, "id = ?", req.TargetID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid SDG target ID",
		})
	}

	if req.Status != nil && !models.ValidProgressStatus(*req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}
	if req.ProgressPercentage != nil && (*req.ProgressPercentage < 0 || *req.ProgressPercentage > 100) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Progress percentage must be between 0 and 100",
		})
	}

	var report models.SDGProgressReport
	created := false
	if err := database.DB.Where("project_id = ? AND target_id = ?", project.ID, target.ID).
		First(&report).Error; err != nil {
		report = models.SDGProgressReport{
			ProjectID:    project.ID,
			TargetID:     target.ID,
			ReportedByID: &caller.UserID,
		}
		created = true
	}

	if req.Status != nil {
		report.Status = *req.Status
	}
	if req.ProgressPercentage != nil {
		report.ProgressPercentage = *req.ProgressPercentage
	}
	if req.Description != nil {
		report.Description = *req.Description
	}
	if req.Challenges != nil {
		report.Challenges = *req.Challenges
	}
	if req.NextSteps != nil {
		report.NextSteps = *req.NextSteps
	}

	if err := database.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save progress report",
		})
	}

	database.DB.Preload("Target.Goal").First(&report, "id = ?", report.ID)
	if created {
		return c.Status(fiber.StatusCreated).JSON(report)
	}
	return c.JSON(report)
}

func DeleteProgressReport(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid progress report ID",
		})
	}

	var report models.SDGProgressReport
	if err := database.DB.Scopes(authz.ProjectChildScope(caller, "sdg_progress_reports")).
		First(&report, "sdg_progress_reports.id = ?", reportID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Progress report not found",
		})
	}

	if err := database.DB.Delete(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete progress report",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
