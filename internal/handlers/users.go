package handlers

import (
	"errors"

	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser creates a user. Unauthenticated self-registration must name
// a target organization in the body; authenticated creation always uses the
// caller's organization, never client-supplied input.
func RegisterUser(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var req models.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username, email and password are required",
		})
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if !models.ValidRole(role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	var clientID *uuid.UUID
	if caller.Authenticated {
		clientID = caller.ClientID
	} else {
		if req.Client == nil || *req.Client == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"client": "This field is required for registration",
			})
		}
		id, err := uuid.Parse(*req.Client)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"client": "Invalid client ID",
			})
		}
		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"client": "Invalid client ID",
			})
		}
		clientID = &id
	}

	var existing models.ClientUser
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already taken",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	subscribe := true
	if req.SubscribeToUpdates != nil {
		subscribe = *req.SubscribeToUpdates
	}

	user := models.ClientUser{
		ClientID:           clientID,
		Username:           req.Username,
		Email:              req.Email,
		Password:           string(hashed),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Role:               role,
		JobTitle:           req.JobTitle,
		FocusAreas:         req.FocusAreas,
		ProjectExperience:  req.ProjectExperience,
		Motivation:         req.Motivation,
		SubscribeToUpdates: subscribe,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// indexes on email and username decide.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email or username already taken",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func GetUsers(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	users := []models.ClientUser{}
	if err := database.DB.Scopes(authz.UserScope(caller)).
		Preload("Client").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(users)
}

func GetUser(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var user models.ClientUser
	if err := database.DB.Scopes(authz.UserScope(caller)).
		Preload("Client").
		First(&user, "client_users.id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user)
}

func UpdateUser(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var user models.ClientUser
	if err := database.DB.Scopes(authz.UserScope(caller)).
		First(&user, "client_users.id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid role",
			})
		}
		user.Role = *req.Role
	}
	if req.JobTitle != nil {
		user.JobTitle = req.JobTitle
	}
	if req.FocusAreas != nil {
		user.FocusAreas = *req.FocusAreas
	}
	if req.ProjectExperience != nil {
		user.ProjectExperience = req.ProjectExperience
	}
	if req.Motivation != nil {
		user.Motivation = req.Motivation
	}
	if req.SubscribeToUpdates != nil {
		user.SubscribeToUpdates = *req.SubscribeToUpdates
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to hash password",
			})
		}
		user.Password = string(hashed)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	return c.JSON(user)
}

func DeleteUser(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var user models.ClientUser
	if err := database.DB.Scopes(authz.UserScope(caller)).
		First(&user, "client_users.id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
