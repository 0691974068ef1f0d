package handlers

import (
	"github.com/arnold/activities-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

// CreatePrivateUser creates a user without authentication. Mounted only in
// the local environment.
func CreatePrivateUser(c *fiber.Ctx) error {
	var req models.PrivateUserCreate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := createUser(c, req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}
	return c.JSON(user)
}
