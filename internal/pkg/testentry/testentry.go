package testentry

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/app"
	"github.com/DS-LIT/hrba-forms/internal/app/appcontext"
)

// Populate starts the whole application against a private in-memory SQLite database with the
// direct-draw renderer, then fills targets. extra options go last, so fx.Replace and fx.Decorate
// can swap out infrastructure such as the mail transport.
func Populate(t testing.TB, extra []fx.Option, targets ...any) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	t.Setenv("HRBA_DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	t.Setenv("HRBA_RENDER_STRATEGY", "direct")
	t.Setenv("HRBA_REDIS_URL", "")
	t.Setenv("HRBA_SENTRY_DSN", "")
	t.Setenv("HRBA_TRACING_ENABLED", "false")
	t.Setenv("HRBA_DEV_MODE", "false")
	t.Setenv("HRBA_EMAIL_USER", "forms@hillsraiders.com.au")

	opts := app.Options(appcontext.Declare(appcontext.EnvTest))
	// for testing, logger is too annoying. therefore, we use a NopLogger here
	opts = append(opts, fx.NopLogger)
	opts = append(opts, extra...)
	opts = append(opts, fx.Populate(targets...))
	opts = append(opts, fx.Invoke(func() {
		log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))
	}))

	fxApp := fx.New(opts...)
	if err := fxApp.Start(context.Background()); err != nil {
		t.Fatalf("testentry: failed to start app: %v", err)
	}
	t.Cleanup(func() {
		_ = fxApp.Stop(context.Background())
	})
}
