package handlers

import (
	"errors"

	"github.com/arnold/activities-api/internal/config"
	"github.com/arnold/activities-api/internal/logger"
	"github.com/arnold/activities-api/internal/middleware"
	"github.com/arnold/activities-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errEmailTaken = fiber.NewError(fiber.StatusBadRequest, "The user with this email already exists in the system")

// LoginAccessToken exchanges email and password (form or JSON) for a bearer token.
func LoginAccessToken(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		// Find user
		var user models.User
		if err := middleware.GetSession(c).Where("email = ?", req.Username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Incorrect email or password")
			}
			return err
		}

		// Check password
		if !user.CheckPassword(req.Password) {
			return fiber.NewError(fiber.StatusBadRequest, "Incorrect email or password")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Inactive user")
		}

		token, err := middleware.GenerateToken(cfg.JWTSecret, user.ID, cfg.AccessTokenExpire)
		if err != nil {
			return err
		}

		return c.JSON(models.Token{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// TestToken echoes the user the bearer token resolves to.
func TestToken(c *fiber.Ctx) error {
	return c.JSON(middleware.GetCurrentUser(c))
}

func GetMe(c *fiber.Ctx) error {
	return c.JSON(middleware.GetCurrentUser(c))
}

// Signup registers a regular, active user.
func Signup(c *fiber.Ctx) error {
	var req models.UserRegister
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := createUser(c, req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func createUser(c *fiber.Ctx, email, password string, fullName *string) (*models.User, error) {
	db := middleware.GetSession(c)

	// Check if user exists
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Email:    email,
		FullName: fullName,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	logger.FromCtx(c).WithField("user", user.ID).Info("user created")
	return &user, nil
}
