package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DS-LIT/hrba-forms/internal/server/svr"
)

func RegisterIndex(api *svr.API) {
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"@link":   "https://hrba-portal.hillsraiders.com.au",
			"message": "Welcome to the Hills Raiders Basketball Association forms API",
		})
	})
}
