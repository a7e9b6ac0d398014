package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read at startup.
const (
	EnvLogLevel = "APRENDEMOS_LOG_LEVEL"
	EnvDataDir  = "APRENDEMOS_DATA_DIR"
	EnvSpeech   = "APRENDEMOS_SPEECH_COMMAND"
)

// LoadEnv loads KEY=VALUE pairs from the given .env files. Missing files are
// skipped and variables already set in the process win.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// Env holds the overrides taken from the environment.
type Env struct {
	LogLevel      string
	DataDir       string
	SpeechCommand string
}

// ReadEnv collects the overrides from the process environment.
func ReadEnv() Env {
	return Env{
		LogLevel:      strings.TrimSpace(os.Getenv(EnvLogLevel)),
		DataDir:       strings.TrimSpace(os.Getenv(EnvDataDir)),
		SpeechCommand: strings.TrimSpace(os.Getenv(EnvSpeech)),
	}
}
