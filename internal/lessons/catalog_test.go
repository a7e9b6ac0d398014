package lessons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/aprendemos/internal/dictee"
)

func TestBuiltinLessonsAreValid(t *testing.T) {
	for _, l := range Builtin() {
		require.NoError(t, l.Validate(), l.ID)
	}
	c := NewCatalog()
	l, ok := c.Find("le-son-s")
	require.True(t, ok)
	assert.Equal(t, 39, l.TotalWords())
	assert.Len(t, l.Groups, 6)
	assert.Equal(t, "Le son [s]", l.Title)
}

func TestCatalogOverrideAndOrder(t *testing.T) {
	extra := dictee.Lesson{ID: "le-son-s", Title: "Mine", Groups: []dictee.Group{{Label: "x", Words: []dictee.Word{{Word: "a", Translation: "b"}}}}}
	other := dictee.Lesson{ID: "z", Title: "Z"}
	c := NewCatalog(extra, other)

	require.Equal(t, 2, c.Len())
	l, _ := c.Find("le-son-s")
	assert.Equal(t, "Mine", l.Title)
	assert.Equal(t, "z", c.All()[1].ID)

	_, ok := c.Find("missing")
	assert.False(t, ok)
}

const validLesson = `
id = "le-son-k"
title = "Le son [k]"
emoji = "🦆"

[[groups]]
label = "qu"

[[groups.words]]
word = "coquille"
article = "la"
translation = "la concha"
alt_translations = ["la piedra", "la arena", "el mar"]
`

const badLesson = `
id = "broken"
title = "Broken"

[[groups]]
label = "empty"
`

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.toml"), []byte(validLesson), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.toml"), []byte(badLesson), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	log, hook := test.NewNullLogger()
	got, err := LoadDir(dir, log)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "le-son-k", got[0].ID)
	assert.Equal(t, "la coquille", got[0].Groups[0].Words[0].Display())

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoadDirMissing(t *testing.T) {
	got, err := LoadDir(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadFileDefaultsIDToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mi-leccion.toml")
	content := "title = \"x\"\n[[groups]]\nlabel = \"g\"\n[[groups.words]]\nword = \"chat\"\ntranslation = \"el gato\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mi-leccion", l.ID)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.toml")
	require.NoError(t, os.WriteFile(path, []byte(validLesson+"\ncolour = \"red\"\n"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}
