package svr

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DS-LIT/hrba-forms/internal/constant"
)

// API serves the portal: intake, catalog, theme and documents.
type API struct {
	fiber.Router
}

// Meta serves health and build information.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*API, *Meta) {
	api := app.Group(constant.APIPrefix)
	meta := app.Group(constant.APIPrefix + "/_")

	return &API{Router: api}, &Meta{Router: meta}
}
