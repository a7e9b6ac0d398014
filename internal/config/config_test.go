package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Dictee.Level)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[platform]
player-name = "Lucía"
sound = false

[dictee]
level = 3
pro-mode = true

[multiplica]
tables = [6, 7, 8]
time = 90

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Platform.PlayerName)
	assert.Equal(t, "Lucía", *cfg.Platform.PlayerName)
	require.NotNil(t, cfg.Platform.Sound)
	assert.False(t, *cfg.Platform.Sound)
	assert.Equal(t, 3, *cfg.Dictee.Level)
	assert.True(t, *cfg.Dictee.ProMode)
	assert.Equal(t, []int{6, 7, 8}, *cfg.Multiplica.Tables)
	assert.Equal(t, 90, *cfg.Multiplica.Time)
	assert.Equal(t, "debug", *cfg.Log.Level)
	assert.Nil(t, cfg.Speech.Command)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dictee]\nlevle = 2\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv(EnvDataDir, "")

	assert.Equal(t, filepath.Join("/cfg", "aprendemos", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "aprendemos", "lessons"), DefaultLessonDir())
	assert.Equal(t, filepath.Join("/data", "aprendemos", "aprendemos.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/state", "aprendemos", "aprendemos.log"), DefaultLogPath())

	t.Setenv(EnvDataDir, "/elsewhere")
	assert.Equal(t, filepath.Join("/elsewhere", "aprendemos.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/x", "aprendemos.db"), DBPath("/x"))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APRENDEMOS_LOG_LEVEL=warn\nAPRENDEMOS_DATA_DIR=/tmp/apr\n"), 0o644))

	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	t.Setenv(EnvDataDir, "/preset")

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), path))
	env := ReadEnv()
	assert.Equal(t, "warn", env.LogLevel)
	assert.Equal(t, "/preset", env.DataDir)
}
