package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnvironmentOverrides.
const (
	EnvRenderer   = "ORRERY_RENDERER"
	EnvFrameRate  = "ORRERY_FRAME_RATE"
	EnvWidth      = "ORRERY_WIDTH"
	EnvHeight     = "ORRERY_HEIGHT"
	EnvFullscreen = "ORRERY_FULLSCREEN"
	EnvShowAxes   = "ORRERY_SHOW_AXES"
	EnvLogFile    = "ORRERY_LOG_FILE"
)

// LoadDotEnv loads environment files into the process environment.
// Variables already set are left alone. With no arguments it reads
// ".env" and tolerates its absence.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env files %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// ApplyEnvironmentOverrides applies environment variables on top of a
// loaded configuration and validates the result.
func ApplyEnvironmentOverrides(config *Config) error {
	if config == nil {
		return errors.New("nil config")
	}

	config.Renderer = strings.ToLower(getEnvOrDefault(EnvRenderer, config.Renderer))
	config.FrameRate = getEnvAsFloatOrDefault(EnvFrameRate, config.FrameRate)
	config.Window.Width = getEnvAsIntOrDefault(EnvWidth, config.Window.Width)
	config.Window.Height = getEnvAsIntOrDefault(EnvHeight, config.Window.Height)
	config.Window.Fullscreen = getEnvAsBoolOrDefault(EnvFullscreen, config.Window.Fullscreen)
	config.View.ShowAxes = getEnvAsBoolOrDefault(EnvShowAxes, config.View.ShowAxes)
	config.LogFile = getEnvOrDefault(EnvLogFile, config.LogFile)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration after environment overrides: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
