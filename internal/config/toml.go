// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Platform   PlatformConfig   `toml:"platform"`
	Dictee     DicteeConfig     `toml:"dictee"`
	Multiplica MultiplicaConfig `toml:"multiplica"`
	Speech     SpeechConfig     `toml:"speech"`
	Log        LogConfig        `toml:"log"`
}

// PlatformConfig maps settings shared by every game.
type PlatformConfig struct {
	PlayerName *string `toml:"player-name"`
	Sound      *bool   `toml:"sound"`
	DataDir    *string `toml:"data-dir"`
}

// DicteeConfig maps dictation settings.
type DicteeConfig struct {
	Level     *int    `toml:"level"`
	ProMode   *bool   `toml:"pro-mode"`
	LessonDir *string `toml:"lesson-dir"`
}

// MultiplicaConfig maps multiplication settings.
type MultiplicaConfig struct {
	Tables *[]int `toml:"tables"`
	Time   *int   `toml:"time"`
}

// SpeechConfig maps the text-to-speech command.
type SpeechConfig struct {
	Command *string  `toml:"command"`
	Voice   *string  `toml:"voice"`
	Rate    *float64 `toml:"rate"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
