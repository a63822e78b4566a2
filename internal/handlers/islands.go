package handlers

import (
	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetIslands(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	query := database.DB.Scopes(authz.ReferenceScope(caller))
	if region := c.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}

	islands := []models.SIDSIsland{}
	if err := query.Order("name ASC").Find(&islands).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch islands",
		})
	}

	return c.JSON(islands)
}

func GetIsland(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	islandID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid island ID",
		})
	}

	var island models.SIDSIsland
	if err := database.DB.Scopes(authz.ReferenceScope(caller)).
		First(&island, "id = ?", islandID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Island not found",
		})
	}

	return c.JSON(island)
}

func CreateIsland(c *fiber.Ctx) error {
	var req models.CreateIslandRequest
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
	if req.Region != models.RegionCaribbean && req.Region != models.RegionPacific && req.Region != models.RegionAIMS {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid region",
		})
	}

	island := models.SIDSIsland{
		Name:    req.Name,
		Region:  req.Region,
		ISOCode: req.ISOCode,
	}

	if err := database.DB.Create(&island).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create island",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(island)
}

func UpdateIsland(c *fiber.Ctx) error {
	islandID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid island ID",
		})
	}

	var island models.SIDSIsland
	if err := database.DB.First(&island, "id = ?", islandID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Island not found",
		})
	}

	var req models.UpdateIslandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		island.Name = *req.Name
	}
	if req.Region != nil {
		if *req.Region != models.RegionCaribbean && *req.Region != models.RegionPacific && *req.Region != models.RegionAIMS {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid region",
			})
		}
		island.Region = *req.Region
	}
	if req.ISOCode != nil {
		island.ISOCode = *req.ISOCode
	}

	if err := database.DB.Save(&island).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update island",
		})
	}

	return c.JSON(island)
}

func DeleteIsland(c *fiber.Ctx) error {
	islandID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid island ID",
		})
	}

	var island models.SIDSIsland
	if err := database.DB.First(&island, "id = ?", islandID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Island not found",
		})
	}

	if err := database.DB.Delete(&island).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete island",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
