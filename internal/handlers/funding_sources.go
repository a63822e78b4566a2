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

func GetFundingSources(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	sources := []models.FundingSource{}
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		Order("label ASC").
		Find(&sources).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch funding sources",
		})
	}

	return c.JSON(sources)
}

func CreateFundingSource(c *fiber.Ctx) error {
	var req models.CreateFundingSourceRequest
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

	source := models.FundingSource{Label: req.Label}
	if err := database.DB.Create(&source).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create funding source",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(source)
}

func DeleteFundingSource(c *fiber.Ctx) error {
	sourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid funding source ID",
		})
	}

	var source models.FundingSource
	if err := database.DB.First(&source, "id = ?", sourceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Funding source not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_id = ?", source.ID).Delete(&models.ProjectFunding{}).Error; err != nil {
			return err
		}
		return tx.Delete(&source).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete funding source",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
