package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/DS-LIT/hrba-forms/cmd/app/cli/inspect"
	"github.com/DS-LIT/hrba-forms/cmd/app/cli/render"
	"github.com/DS-LIT/hrba-forms/cmd/app/cli/submit"
	"github.com/DS-LIT/hrba-forms/cmd/app/server"
	"github.com/DS-LIT/hrba-forms/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "hrba-forms",
		Description: "Hills Raiders forms portal. Takes tribunal reports and reimbursement requests, renders them to PDF and emails them to the association. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			render.Command(),
			inspect.Command(),
			submit.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
