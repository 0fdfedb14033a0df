package form

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/pkg/cachectrl"
	"github.com/DS-LIT/hrba-forms/internal/server/svr"
	"github.com/DS-LIT/hrba-forms/internal/service"
)

// startedAt is when the embedded catalog was loaded; it never changes afterwards.
var startedAt = time.Now()

type Portal struct {
	fx.In

	PortalService *service.Portal
}

func RegisterPortal(api *svr.API, c Portal) {
	api.Get("/forms", c.GetDashboard)
	api.Get("/forms/:form", c.GetSchema)
	api.Get("/theme", c.GetTheme)
	api.Get("/documents/:file", c.GetDocument)
}

func (c *Portal) GetDashboard(ctx *fiber.Ctx) error {
	return cachectrl.CachedJSON(ctx, c.PortalService.Dashboard(), startedAt, time.Minute*5)
}

func (c *Portal) GetSchema(ctx *fiber.Ctx) error {
	schema, err := c.PortalService.Schema(ctx.Params("form"))
	if err != nil {
		return err
	}

	return cachectrl.CachedJSON(ctx, schema, startedAt, time.Minute*5)
}

func (c *Portal) GetTheme(ctx *fiber.Ctx) error {
	return cachectrl.CachedJSON(ctx, c.PortalService.Theme(ctx.Query("mode")), startedAt, time.Hour)
}

func (c *Portal) GetDocument(ctx *fiber.Ctx) error {
	path, err := c.PortalService.DocumentPath(ctx.Params("file"))
	if err != nil {
		return err
	}

	return ctx.Download(path, filepath.Base(path))
}
