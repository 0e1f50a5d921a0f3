package yololbl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownClass is the class id returned for labels without a mapping.
const UnknownClass = -1

// ClassesFileName is the name of the class list written next to the label files.
const ClassesFileName = "classes.txt"

// DefaultClassNames are the classes used when no class map file is given.
var DefaultClassNames = []string{"benign", "DCIS", "kalsifikasyon", "malign"}

// ClassMapping maps semantic label names to class ids. The id of a class is its position in the
// list of names. A ClassMapping is not modified after construction.
type ClassMapping struct {
	names []string
	ids   map[string]int
}

// NewClassMapping creates a mapping that assigns the ids 0..len(names)-1 to names, in order.
// Empty and duplicate names are rejected.
func NewClassMapping(names []string) (ClassMapping, error) {
	if len(names) == 0 {
		return ClassMapping{}, fmt.Errorf("empty class list")
	}

	m := ClassMapping{
		names: make([]string, len(names)),
		ids:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return ClassMapping{}, fmt.Errorf("empty class name at index %d", i)
		}
		if j, dup := m.ids[name]; dup {
			return ClassMapping{}, fmt.Errorf("duplicate class %q at index %d and %d", name, j, i)
		}
		m.names[i] = name
		m.ids[name] = i
	}

	return m, nil
}

// DefaultClassMapping returns the mapping for DefaultClassNames.
func DefaultClassMapping() ClassMapping {
	m, err := NewClassMapping(DefaultClassNames)
	if err != nil {
		panic(err)
	}
	return m
}

// classMapFile is the YAML layout of a class map file.
type classMapFile struct {
	Classes []string `yaml:"classes"`
}

// LoadClassMapping reads a YAML class map file with a "classes" list from path.
func LoadClassMapping(path string) (ClassMapping, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return ClassMapping{}, err
	}

	var f classMapFile
	if err := yaml.Unmarshal(enc, &f); err != nil {
		return ClassMapping{}, fmt.Errorf("failed to parse class map %q: %w", path, err)
	}

	m, err := NewClassMapping(f.Classes)
	if err != nil {
		return ClassMapping{}, fmt.Errorf("invalid class map %q: %w", path, err)
	}
	return m, nil
}

// ID returns the class id for label, or UnknownClass.
func (m ClassMapping) ID(label string) int {
	if id, ok := m.ids[label]; ok {
		return id
	}
	return UnknownClass
}

// Name returns the label name for id, or "unknown".
func (m ClassMapping) Name(id int) string {
	if id < 0 || id >= len(m.names) {
		return "unknown"
	}
	return m.names[id]
}

// Names returns the class names in id order.
func (m ClassMapping) Names() []string {
	return append([]string(nil), m.names...)
}

// Len is the number of classes.
func (m ClassMapping) Len() int {
	return len(m.names)
}

// WriteClassesFile writes one class name per line, in id order, to ClassesFileName in dir and
// returns the file path.
func (m ClassMapping) WriteClassesFile(dir string) (string, error) {
	path := filepath.Join(dir, ClassesFileName)

	var b strings.Builder
	for _, name := range m.names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("cannot write file %q: %w", path, err)
	}

	return path, nil
}
