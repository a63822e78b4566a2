package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/emph/emph-api/internal/authz"
	"github.com/emph/emph-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID   uuid.UUID  `json:"userId"`
	Email    string     `json:"email"`
	ClientID *uuid.UUID `json:"clientId,omitempty"`
	Role     string     `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-in-production"
	}
	return []byte(secret)
}

func GenerateToken(user *models.ClientUser) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		ClientID: user.ClientID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)), // 7 days
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// Authenticate resolves the caller from a bearer token when one is present.
// It never rejects: unauthenticated requests proceed with an empty caller and
// the tenant scopes give them empty results.
func Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Next()
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Next()
		}

		c.Locals("caller", authz.Caller{
			UserID:        claims.UserID,
			Email:         claims.Email,
			ClientID:      claims.ClientID,
			Role:          claims.Role,
			Authenticated: true,
		})
		return c.Next()
	}
}

// Access enforces the policy table entry for one operation. Public and
// tenant-level operations pass through; row visibility stays with the
// scope helpers.
func Access(res authz.Resource, op authz.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authz.Allows(res, op, Caller(c)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		return c.Next()
	}
}

// Caller extracts the resolved caller from the request context.
func Caller(c *fiber.Ctx) authz.Caller {
	caller, ok := c.Locals("caller").(authz.Caller)
	if !ok {
		return authz.Caller{}
	}
	return caller
}
