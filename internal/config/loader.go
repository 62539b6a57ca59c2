package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// LoadEnvFile loads variables from a dotenv file into the process environment
// without overriding variables that are already set. When path is empty it
// tries ".env" in the working directory and silently does nothing if the file
// is absent; an explicit path that cannot be read is an error.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED,
			"failed to load env file "+path, err)
	}
	return nil
}

// Load builds the effective configuration. Precedence, lowest to highest:
// built-in defaults, YAML config file (optional), process environment.
// The returned Config is validated.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
				"failed to read config file "+configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, types.WrapError(types.CONFIG_PARSE_FAILED,
				"failed to parse config file "+configFile, err)
		}
	}

	// envconfig leaves fields untouched when the variable is unset, so the
	// file and default values survive a sparse environment.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED,
			"failed to process environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
