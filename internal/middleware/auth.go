package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/arnold/activities-api/internal/logger"
	"github.com/arnold/activities-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// GenerateToken issues an HS256 access token whose subject is the user ID.
func GenerateToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns the user ID it was issued for.
func ParseToken(secret, tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	return uuid.Parse(claims.Subject)
}

// Protected resolves the bearer token to an active user. It must run after
// Session so the lookup shares the request's database session.
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		// Extract token from "Bearer <token>"; the scheme is case-insensitive.
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		userID, err := ParseToken(secret, tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Could not validate credentials")
		}

		var user models.User
		if err := GetSession(c).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Inactive user")
		}

		c.Locals(currentUserKey, &user)
		logger.WithIdentity(c, user.Email)

		return c.Next()
	}
}

// GetCurrentUser returns the user resolved by Protected, or nil on public routes.
func GetCurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(currentUserKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
