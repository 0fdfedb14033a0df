package infra

import (
	"github.com/rs/zerolog/log"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/render"
)

// Renderer builds the server-side renderer selected by RenderStrategy.
func Renderer(conf *appconfig.Config) (render.Renderer, error) {
	strategy, err := render.ParseStrategy(conf.RenderStrategy)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("evt.name", "infra.renderer.selected").
		Str("strategy", string(strategy)).
		Msg("report renderer configured")

	r, err := render.New(strategy, &render.Chrome{
		ExecPath: conf.ChromePath,
		Timeout:  conf.ChromeTimeout,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
