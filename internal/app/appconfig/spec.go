package appconfig

import (
	"time"

	"github.com/DS-LIT/hrba-forms/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address for the forms API.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:1337"`

	// Environment selects the report recipient and a few production-only behaviours.
	// Valid values are: development, production.
	Environment Environment `required:"true" split_words:"true" default:"development"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile, when set, additionally writes JSON logs to a size-rotated file at this path.
	LogFile string `split_words:"true"`

	// LogFileMaxSizeMB is the size at which LogFile is rotated.
	LogFileMaxSizeMB int `split_words:"true" default:"50"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// CorsAllowOrigins is passed to the cors middleware as-is.
	CorsAllowOrigins string `split_words:"true" default:"*"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"otlp"`

	// TracingOtlpEndpoint is the host:port of the OTLP gRPC collector.
	TracingOtlpEndpoint string `split_words:"true" default:"localhost:4317"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// DatabaseDSN is where submissions are staged while they are rendered and mailed.
	// A postgres:// or postgresql:// DSN uses PostgreSQL (see https://bun.uptrace.dev/postgres/#pgdriver),
	// anything starting with file: or sqlite: uses SQLite.
	DatabaseDSN string `required:"true" split_words:"true" default:"file:hrba-forms.db?cache=shared&_fk=1"`

	DatabaseMaxOpenConns    int           `split_words:"true" default:"10"`
	DatabaseMaxIdleConns    int           `split_words:"true" default:"2"`
	DatabaseConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	DatabaseConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	// DatabasePingAttempts bounds the start-up ping, 500ms apart.
	DatabasePingAttempts uint `split_words:"true" default:"3"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is optional. When set, intake rate limiting and idempotency keys are kept in Redis
	// instead of process memory. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL.
	RedisURL string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// mail

	// SMTPHost is the outbound SMTP relay.
	SMTPHost string `required:"true" split_words:"true" default:"smtp.office365.com"`

	SMTPPort int `required:"true" split_words:"true" default:"587"`

	// SMTPTLS is one of: mandatory (STARTTLS required), opportunistic, ssl (implicit TLS), none.
	SMTPTLS string `split_words:"true" default:"mandatory"`

	// SMTPAuth is one of: login, plain, none.
	SMTPAuth string `split_words:"true" default:"login"`

	// EmailUser is the SMTP username and the From address of every message.
	EmailUser string `split_words:"true"`

	EmailPass string `split_words:"true"`

	SMTPTimeout time.Duration `split_words:"true" default:"30s"`

	// ReportEmailRecipient receives submissions when Environment is production.
	ReportEmailRecipient string `split_words:"true"`

	// InternalEmailRecipient receives submissions everywhere else.
	InternalEmailRecipient string `split_words:"true" default:"itadmin@hillsraiders.com.au"`

	// rendering

	// RenderStrategy selects how the server turns a submission into a PDF.
	// Valid values are: template (HTML rendered in headless Chrome), direct (drawn with fpdf).
	RenderStrategy string `required:"true" split_words:"true" default:"template"`

	// ChromePath overrides the Chrome/Chromium executable. Empty uses the one found in PATH.
	ChromePath string `split_words:"true"`

	// ChromeTimeout bounds a single rasterization including browser start-up.
	ChromeTimeout time.Duration `split_words:"true" default:"45s"`

	// DocumentsDir holds the static documents offered for download on the dashboard.
	DocumentsDir string `split_words:"true" default:"./documents"`

	// IntakeRateLimit is the number of submissions a single client IP may post per IntakeRateWindow.
	IntakeRateLimit int `split_words:"true" default:"20"`

	IntakeRateWindow time.Duration `split_words:"true" default:"1m"`

	// IdempotencyKeyLifetime is how long a replayable intake response is kept. Needs RedisURL.
	IdempotencyKeyLifetime time.Duration `split_words:"true" default:"24h"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// client

	// APIBaseURL is where the portal client posts submissions.
	APIBaseURL string `split_words:"true" default:"http://localhost:1337"`

	// APIProductionURL overrides APIBaseURL when Environment is production.
	APIProductionURL string `split_words:"true" default:"https://hrba-portal.hillsraiders.com.au"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}

func (c *Config) Production() bool {
	return c.Environment == EnvironmentProduction
}

// ReportRecipient is the address every rendered submission is mailed to.
func (c *Config) ReportRecipient() string {
	if c.Production() && c.ReportEmailRecipient != "" {
		return c.ReportEmailRecipient
	}
	return c.InternalEmailRecipient
}

// APIURL is the base URL the portal client talks to.
func (c *Config) APIURL() string {
	if c.Production() && c.APIProductionURL != "" {
		return c.APIProductionURL
	}
	return c.APIBaseURL
}
