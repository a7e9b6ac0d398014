package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "aprendemos.log")
	logger, closer, err := New(Options{Level: "debug", Path: path})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("lesson", "le-son-s").Info("session finished")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "session finished"))
	assert.True(t, strings.Contains(string(data), "lesson=le-son-s"))
}

func TestNewDefaultsLevel(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
