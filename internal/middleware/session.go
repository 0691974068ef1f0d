package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const sessionKey = "session"

// Session binds a database session scoped to the request context. Each write
// through it runs in its own transaction and is committed before returning.
func Session(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(sessionKey, db.WithContext(c.UserContext()))
		return c.Next()
	}
}

func GetSession(c *fiber.Ctx) *gorm.DB {
	return c.Locals(sessionKey).(*gorm.DB)
}
