// Package config loads runtime settings for the fluxvar command from
// the environment, with an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir    string  // root of the light-curve catalog
	OutputDir  string  // plots, JSON results, rendered frames
	FrameDir   string  // FITS snapshot images for movie mode
	FFmpegPath string  // empty means ffmpeg from PATH
	FPS        int     // movie frame rate
	Gamma      float64 // intensity stretch for rendered frames
	LogLevel   string
}

// LoadConfig reads settings from the environment. A .env file in the
// working directory is merged in first; a missing file is not an error.
func LoadConfig() *Config {
	_ = godotenv.Load() // ignore missing file

	return &Config{
		DataDir:    getEnv("FLUXVAR_DATA_DIR", "data"),
		OutputDir:  getEnv("FLUXVAR_OUTPUT_DIR", "out"),
		FrameDir:   getEnv("FLUXVAR_FRAME_DIR", "images"),
		FFmpegPath: getEnv("FLUXVAR_FFMPEG", ""),
		FPS:        getEnvAsInt("FLUXVAR_FPS", 20),
		Gamma:      getEnvAsFloat("FLUXVAR_GAMMA", 0.5),
		LogLevel:   strings.ToLower(getEnv("FLUXVAR_LOG_LEVEL", "info")),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
