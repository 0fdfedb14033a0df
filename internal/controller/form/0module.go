package form

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controllers.form", fx.Invoke(
		RegisterIntake,
		RegisterPortal,
	))
}
