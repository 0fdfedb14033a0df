package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DS-LIT/hrba-forms/internal/app/appcontext"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse(appcontext.Declare(appcontext.EnvTest))
	require.NoError(t, err)

	assert.Equal(t, EnvironmentDevelopment, conf.Environment)
	assert.Equal(t, "smtp.office365.com", conf.SMTPHost)
	assert.Equal(t, 587, conf.SMTPPort)
	assert.Equal(t, "template", conf.RenderStrategy)
	assert.Equal(t, "itadmin@hillsraiders.com.au", conf.ReportRecipient())
	assert.Equal(t, "http://localhost:1337", conf.APIURL())
}

func TestReportRecipient(t *testing.T) {
	t.Setenv("HRBA_ENVIRONMENT", "production")
	t.Setenv("HRBA_REPORT_EMAIL_RECIPIENT", "reports@example.org")

	conf, err := Parse(appcontext.Declare(appcontext.EnvTest))
	require.NoError(t, err)

	assert.True(t, conf.Production())
	assert.Equal(t, "reports@example.org", conf.ReportRecipient())
	assert.Equal(t, "https://hrba-portal.hillsraiders.com.au", conf.APIURL())
}

func TestProductionNeedsReportRecipient(t *testing.T) {
	t.Setenv("HRBA_ENVIRONMENT", "production")
	t.Setenv("HRBA_REPORT_EMAIL_RECIPIENT", "")

	_, err := Parse(appcontext.Declare(appcontext.EnvTest))
	assert.ErrorIs(t, err, ErrNoReportRecipient)

	conf, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	require.NoError(t, err, "commands never mail")
	assert.Equal(t, "https://hrba-portal.hillsraiders.com.au", conf.APIURL())
}

func TestEnvironmentDecode(t *testing.T) {
	var e Environment
	assert.NoError(t, e.Decode(" Production "))
	assert.Equal(t, EnvironmentProduction, e)
	assert.Error(t, e.Decode("staging"))
}
