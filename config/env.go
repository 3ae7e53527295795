package config

import (
	"os"
	"strings"
)

// Environment is the deployment stage the process runs in. It decides where
// secrets come from and which surfaces the server exposes.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// ParseEnvironment maps an ENV value to an Environment. Unknown and empty
// values mean development.
func ParseEnvironment(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// GetEnvironment reads ENV. CI=true wins over it.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// IsProduction reports whether the process runs in production.
func IsProduction() bool {
	return GetEnvironment() == Production
}

// loadsDotEnv reports whether a local .env file is honoured.
func (e Environment) loadsDotEnv() bool {
	return e == Development || e == Test
}

// secretsOnly reports whether credentials must come from Docker secrets,
// with no environment variable fallback.
func (e Environment) secretsOnly() bool {
	return e == Production
}
