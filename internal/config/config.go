package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

// Config holds the process configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	// GameConfigPath points at the YAML game config. Empty means the
	// built-in defaults.
	GameConfigPath string

	// SaveAppName names the directory the ledger is saved under
	SaveAppName string

	// RNGSeed seeds every random draw. Zero picks a seed from the clock.
	RNGSeed uint64

	// AutosaveInterval overrides the game config's interval when positive
	AutosaveInterval time.Duration

	// DevMode disables the interaction cooldown
	DevMode bool

	ShutdownTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:        strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:      getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:      getEnv(EnvServiceName, DefaultServiceName),
		Version:          getEnv(EnvVersion, DefaultVersion),
		GameConfigPath:   getEnv(EnvGameConfigPath, ""),
		SaveAppName:      getEnv(EnvSaveAppName, DefaultSaveAppName),
		RNGSeed:          getEnvAsUint64(EnvRNGSeed, 0),
		AutosaveInterval: getEnvAsDuration(EnvAutosaveInterval, 0),
		DevMode:          getEnvAsBool(EnvDevMode, false),
		ShutdownTimeout:  getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtInvalidPort, portStr, err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf(ErrFmtPortRange, port, domain.ErrInvalidConfiguration)
	}
	cfg.Port = port

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	value, err := strconv.ParseUint(getEnv(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
