package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func projectPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Island").
		Preload("SDGs").
		Preload("SDGTargets").
		Preload("Timeline").
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Preload("Objectives.Metrics").
		Preload("FundingSources.Source").
		Preload("Draft").
		Preload("CreatedBy")
}

func GetProjects(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	projects := []models.Project{}
	if err := projectPreloads(database.DB.Scopes(authz.ProjectScope(caller))).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch projects",
		})
	}

	return c.JSON(projects)
}

func GetProject(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var project models.Project
	if err := projectPreloads(database.DB.Scopes(authz.ProjectScope(caller))).
		Preload("Stakeholders.Category").
		Preload("RiskAssessment.RiskFactors").
		Preload("SDGProgress.Target").
		First(&project, "projects.id = ?", projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	return c.JSON(project)
}

func CreateProject(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if !caller.Authenticated || caller.ClientID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.CreateProjectRequest
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

	// Owner and creator come from the caller, never from the body.
	project := models.Project{
		ClientID:        *caller.ClientID,
		Name:            req.Name,
		Description:     req.Description,
		ProjectType:     req.ProjectType,
		Priority:        req.Priority,
		Location:        req.Location,
		GeographicScope: req.GeographicScope,
		IslandID:        req.IslandID,
		CreatedByID:     &caller.UserID,
	}

	if len(req.SDGIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.SDGIDs).Find(&project.SDGs).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve SDG goals",
			})
		}
	}
	if len(req.SDGTargetIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.SDGTargetIDs).Find(&project.SDGTargets).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve SDG targets",
			})
		}
	}

	if err := database.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project",
		})
	}

	projectPreloads(database.DB).First(&project, "id = ?", project.ID)
	return c.Status(fiber.StatusCreated).JSON(project)
}

func UpdateProject(c *fiber.Ctx) error {
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

	var req models.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.ProjectType != nil {
		project.ProjectType = *req.ProjectType
	}
	if req.Priority != nil {
		project.Priority = *req.Priority
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.GeographicScope != nil {
		project.GeographicScope = *req.GeographicScope
	}
	if req.IslandID != nil {
		project.IslandID = req.IslandID
	}

	if err := database.DB.Save(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update project",
		})
	}

	if req.SDGIDs != nil {
		var goals []models.SDGGoal
		if len(*req.SDGIDs) > 0 {
			database.DB.Where("id IN ?", *req.SDGIDs).Find(&goals)
		}
		if err := database.DB.Model(&project).Association("SDGs").Replace(goals); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update SDG goals",
			})
		}
	}
	if req.SDGTargetIDs != nil {
		var targets []models.SDGTarget
		if len(*req.SDGTargetIDs) > 0 {
			database.DB.Where("id IN ?", *req.SDGTargetIDs).Find(&targets)
		}
		if err := database.DB.Model(&project).Association("SDGTargets").Replace(targets); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update SDG targets",
			})
		}
	}

	projectPreloads(database.DB).First(&project, "id = ?", project.ID)
	return c.JSON(project)
}

// deleteProjectChildren removes all sub-entities owned by the given projects.
// It must run inside the caller's transaction so a failed cascade rolls back
// as one unit.
func deleteProjectChildren(tx *gorm.DB, projectIDs []uuid.UUID) error {
	var objectiveIDs []uuid.UUID
	if err := tx.Model(&models.ProjectObjective{}).Where("project_id IN ?", projectIDs).Pluck("id", &objectiveIDs).Error; err != nil {
		return err
	}
	if len(objectiveIDs) > 0 {
		if err := tx.Where("objective_id IN ?", objectiveIDs).Delete(&models.SuccessMetric{}).Error; err != nil {
			return err
		}
	}

	children := []any{
		&models.ProjectObjective{},
		&models.ProjectTimeline{},
		&models.ProjectMilestone{},
		&models.ProjectFunding{},
		&models.ProjectDraft{},
		&models.SDGProgressReport{},
		&models.ProjectStakeholder{},
		&models.ProjectRisk{},
	}
	for _, child := range children {
		if err := tx.Where("project_id IN ?", projectIDs).Delete(child).Error; err != nil {
			return err
		}
	}
	return nil
}

func DeleteProject(c *fiber.Ctx) error {
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

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteProjectChildren(tx, []uuid.UUID{project.ID}); err != nil {
			return err
		}
		return tx.Select("SDGs", "SDGTargets").Delete(&project).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete project",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AddProjectMilestone(c *fiber.Ctx) error {
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

	var req models.CreateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	milestone := models.ProjectMilestone{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := database.DB.Create(&milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create milestone",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(milestone)
}

func AddProjectObjective(c *fiber.Ctx) error {
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

	var req models.CreateObjectiveRequest
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

	objective := models.ProjectObjective{
		ProjectID: project.ID,
		Text:      req.Text,
	}

	if err := database.DB.Create(&objective).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create objective",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(objective)
}

func AddProjectFunding(c *fiber.Ctx) error {
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

	var req models.AddProjectFundingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var source models.FundingSource
	if err := database.DB.First(&source, "id = ?", req.SourceID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid funding source ID",
		})
	}

	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}

	funding := models.ProjectFunding{
		ProjectID: project.ID,
		SourceID:  source.ID,
		Amount:    amount,
	}

	if err := database.DB.Create(&funding).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add funding source",
		})
	}

	database.DB.Preload("Source").First(&funding, "id = ?", funding.ID)
	return c.Status(fiber.StatusCreated).JSON(funding)
}

// UpdateProjectTimeline creates the project's timeline on first use, then
// applies partial updates.
func UpdateProjectTimeline(c *fiber.Ctx) error {
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

	var req models.UpdateTimelineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var timeline models.ProjectTimeline
	if err := database.DB.Where("project_id = ?", project.ID).First(&timeline).Error; err != nil {
		timeline = models.ProjectTimeline{ProjectID: project.ID}
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
