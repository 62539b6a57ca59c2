package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// DefaultPort is the port FalkorDB Cloud instances listen on when
// FALKORDB_PORT is not supplied.
const DefaultPort = 55878

// Config holds all settings for one verification run. It is constructed once
// at startup and passed explicitly into the runner; nothing reads the process
// environment after loading completes.
type Config struct {
	// Host is the FalkorDB server hostname or IP.
	Host string `envconfig:"FALKORDB_HOST" yaml:"host"`

	// Port is the FalkorDB server port.
	Port int `envconfig:"FALKORDB_PORT" yaml:"port"`

	// Username for RESP AUTH.
	Username string `envconfig:"FALKORDB_USER" yaml:"username"`

	// Password for RESP AUTH.
	Password string `envconfig:"FALKORDB_PASSWORD" yaml:"password"`

	// TLS enables an encrypted connection to the server.
	TLS bool `envconfig:"FALKORDB_TLS" yaml:"tls"`

	// ConnectTimeout bounds connection establishment. It is a transport
	// setting only; individual verification steps carry no timeouts.
	ConnectTimeout time.Duration `envconfig:"FALKORDB_CONNECT_TIMEOUT" yaml:"connect_timeout"`

	// GraphPrefix is prepended to the timestamp when naming the scratch
	// graph a run creates and deletes.
	GraphPrefix string `envconfig:"GRAPHMIND_GRAPH_PREFIX" yaml:"graph_prefix"`

	// Logging controls the structured log output of the runner.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string `envconfig:"GRAPHMIND_LOG_LEVEL" yaml:"level"`

	// Format is "console" or "json".
	Format string `envconfig:"GRAPHMIND_LOG_FORMAT" yaml:"format"`
}

// Default returns a Config with sensible default values. Host, Username and
// Password have no defaults; they must come from a config file or the
// environment.
func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		ConnectTimeout: 30 * time.Second,
		GraphPrefix:    "graphmind_connection_test",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Addr returns the host:port address for the RESP connection.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks that the configuration is complete enough to attempt a run.
func (c *Config) Validate() error {
	if c.Host == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"host is required (set FALKORDB_HOST)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("port %d out of range", c.Port))
	}
	if c.ConnectTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"connect_timeout must be positive")
	}
	if c.GraphPrefix == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"graph_prefix must not be empty")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}
	return nil
}
