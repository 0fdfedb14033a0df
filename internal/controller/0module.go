package controller

import (
	"go.uber.org/fx"

	controllerform "github.com/DS-LIT/hrba-forms/internal/controller/form"
	controllermeta "github.com/DS-LIT/hrba-forms/internal/controller/meta"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (meta)
		controllermeta.Module(),

		// Controllers (forms)
		controllerform.Module(),
	)
}
