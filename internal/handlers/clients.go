package handlers

import (
	"errors"

	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/emph/emph-api/internal/slug"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClient handles organization self-registration. It is the one client
// operation open to unauthenticated callers.
func CreateClient(c *fiber.Ctx) error {
	var req models.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := req.Name
	if name == "" && req.OrganizationName != nil {
		name = *req.OrganizationName
	}
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	var islands []models.SIDSIsland
	if len(req.IslandIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.IslandIDs).Find(&islands).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve islands",
			})
		}
	}

	client := models.Client{
		Name:             name,
		OrganizationType: req.OrganizationType,
		OrganizationName: req.OrganizationName,
		Country:          req.Country,
		PhoneNumber:      req.PhoneNumber,
		Website:          req.Website,
		Islands:          islands,
	}

	// The uniqueness check and the insert can race with a concurrent
	// registration of the same name. The unique index decides; a duplicate
	// key at insert just means recompute the next suffix and try again.
	base := slug.Derive(name)
	for {
		candidate, err := slug.NextAvailable(database.DB, base)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create client",
			})
		}
		client.Slug = candidate

		err = database.DB.Create(&client).Error
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create client",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	clients := []models.Client{}
	if err := database.DB.Scopes(authz.ClientScope(caller)).
		Preload("Islands").
		Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch clients",
		})
	}

	return c.JSON(clients)
}

func GetClient(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	var client models.Client
	if err := database.DB.Scopes(authz.ClientScope(caller)).
		Preload("Islands").
		First(&client, "clients.id = ?", clientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Client not found",
		})
	}

	return c.JSON(client)
}

func UpdateClient(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	var client models.Client
	if err := database.DB.Scopes(authz.ClientScope(caller)).
		First(&client, "clients.id = ?", clientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Client not found",
		})
	}

	var req models.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.OrganizationType != nil {
		client.OrganizationType = req.OrganizationType
	}
	if req.OrganizationName != nil {
		client.OrganizationName = req.OrganizationName
	}
	if req.Country != nil {
		client.Country = req.Country
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = req.PhoneNumber
	}
	if req.Website != nil {
		client.Website = req.Website
	}

	if err := database.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update client",
		})
	}

	if req.IslandIDs != nil {
		var islands []models.SIDSIsland
		if len(*req.IslandIDs) > 0 {
			database.DB.Where("id IN ?", *req.IslandIDs).Find(&islands)
		}
		if err := database.DB.Model(&client).Association("Islands").Replace(islands); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update islands",
			})
		}
	}

	database.DB.Preload("Islands").First(&client, "id = ?", client.ID)
	return c.JSON(client)
}

func DeleteClient(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	var client models.Client
	if err := database.DB.Scopes(authz.ClientScope(caller)).
		First(&client, "clients.id = ?", clientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Client not found",
		})
	}

	// Cascade: projects (with their sub-entities) and users go with the
	// client, all in one transaction.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uuid.UUID
		if err := tx.Model(&models.Project{}).Where("client_id = ?", client.ID).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		if len(projectIDs) > 0 {
			if err := deleteProjectChildren(tx, projectIDs); err != nil {
				return err
			}
			if err := tx.Where("id IN ?", projectIDs).Delete(&models.Project{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.ClientUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete client",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func GetClientUsers(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	var client models.Client
	if err := database.DB.Scopes(authz.ClientScope(caller)).
		First(&client, "clients.id = ?", clientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Client not found",
		})
	}

	users := []models.ClientUser{}
	if err := database.DB.Where("client_id = ?", client.ID).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(users)
}
