package server

import (
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/server/httpserver"
	"github.com/DS-LIT/hrba-forms/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
