package appconfig

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/DS-LIT/hrba-forms/internal/app/appcontext"
)

const envPrefix = "hrba"

// ErrNoReportRecipient stops a production server from quietly mailing
// submissions to the internal address.
var ErrNoReportRecipient = errors.New("HRBA_REPORT_EMAIL_RECIPIENT must be set when HRBA_ENVIRONMENT is production")

func Parse(ctx appcontext.Ctx) (*Config, error) {
	if ctx.Env != appcontext.EnvTest {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg("failed to load .env file")
		}
	}

	var config ConfigSpec
	err := envconfig.Process(envPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. See internal/app/appconfig/spec.go for the available HRBA_ variables", err)
	}

	// one-off commands never mail, so they may point at production without it
	if config.Environment == EnvironmentProduction && config.ReportEmailRecipient == "" && ctx.Env != appcontext.EnvCLI {
		return nil, ErrNoReportRecipient
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
