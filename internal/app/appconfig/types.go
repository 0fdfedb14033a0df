package appconfig

import (
	"fmt"
	"strings"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

func (e *Environment) Decode(value string) error {
	switch v := Environment(strings.ToLower(strings.TrimSpace(value))); v {
	case EnvironmentDevelopment, EnvironmentProduction:
		*e = v
		return nil
	case "":
		*e = EnvironmentDevelopment
		return nil
	default:
		return fmt.Errorf("invalid environment %q: expect one of development, production", value)
	}
}
