package lessons

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/aprendemos/internal/dictee"
)

// Catalog is an ordered set of lessons addressable by id.
type Catalog struct {
	lessons []dictee.Lesson
	byID    map[string]int
}

// NewCatalog builds a catalog from the built-in lessons plus extra. Extra
// lessons replace built-in ones with the same id.
func NewCatalog(extra ...dictee.Lesson) *Catalog {
	c := &Catalog{byID: map[string]int{}}
	for _, l := range Builtin() {
		c.add(l)
	}
	for _, l := range extra {
		c.add(l)
	}
	return c
}

func (c *Catalog) add(l dictee.Lesson) {
	if i, ok := c.byID[l.ID]; ok {
		c.lessons[i] = l
		return
	}
	c.byID[l.ID] = len(c.lessons)
	c.lessons = append(c.lessons, l)
}

// All returns every lesson in catalog order.
func (c *Catalog) All() []dictee.Lesson {
	out := make([]dictee.Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Find looks up a lesson by id.
func (c *Catalog) Find(id string) (dictee.Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return dictee.Lesson{}, false
	}
	return c.lessons[i], true
}

// Len returns the number of lessons.
func (c *Catalog) Len() int { return len(c.lessons) }

// LoadFile decodes and validates one TOML lesson file.
func LoadFile(path string) (dictee.Lesson, error) {
	var lesson dictee.Lesson
	md, err := toml.DecodeFile(path, &lesson)
	if err != nil {
		return dictee.Lesson{}, fmt.Errorf("failed to decode lesson %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return dictee.Lesson{}, fmt.Errorf("lesson %s: unknown key %q", path, undecoded[0].String())
	}
	if lesson.ID == "" {
		lesson.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := lesson.Validate(); err != nil {
		return dictee.Lesson{}, fmt.Errorf("invalid lesson %s: %w", path, err)
	}
	return lesson, nil
}

// LoadDir reads every *.toml lesson in dir, sorted by file name. Invalid
// files are skipped and logged. A missing dir yields no lessons.
func LoadDir(dir string, log logrus.FieldLogger) ([]dictee.Lesson, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lesson dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var out []dictee.Lesson
	for _, name := range names {
		lesson, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("file", name).Warn("skipping lesson file")
			}
			continue
		}
		out = append(out, lesson)
	}
	return out, nil
}
