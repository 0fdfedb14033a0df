package cli

import (
	"io"
	"os"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/app/appcontext"
	"github.com/DS-LIT/hrba-forms/internal/pkg/logger"
)

// Config loads the configuration for a one-off command. Commands do not
// start the fx graph; they only build the pieces they use.
func Config() (*appconfig.Config, error) {
	conf, err := appconfig.Parse(appcontext.Declare(appcontext.EnvCLI))
	if err != nil {
		return nil, err
	}
	logger.Configure(conf)
	return conf, nil
}

// ReadInput reads a file, or stdin when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
