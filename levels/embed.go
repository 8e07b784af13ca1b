package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is named.
const DefaultLevel = "slopes"

var ErrNoSegments = errors.New("levels: level has no segments")

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Segment is a static collision line with rounded ends.
type Segment struct {
	A        Point   `yaml:"a"`
	B        Point   `yaml:"b"`
	Radius   float64 `yaml:"radius"`
	Friction float64 `yaml:"friction"`
}

type Level struct {
	Name        string    `yaml:"name"`
	Spawn       Point     `yaml:"spawn"`
	GroundLayer uint      `yaml:"ground_layer"`
	Segments    []Segment `yaml:"segments"`
}

// FileName maps a level name to its file; the extension is optional.
func FileName(name string) string {
	if name == "" {
		name = DefaultLevel
	}
	name = filepath.Base(filepath.ToSlash(name))
	if ext := strings.ToLower(filepath.Ext(name)); ext != ".yaml" && ext != ".yml" {
		name += ".yaml"
	}
	return name
}

// Load reads a level, preferring levels/<name> on disk over the embedded
// copy.
func Load(name string) (*Level, error) {
	file := FileName(name)
	data, err := os.ReadFile(filepath.Join("levels", file))
	if err != nil {
		data, err = LevelsFS.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", file, err)
	}
	return Parse(file, data)
}

func Parse(file string, data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", file, err)
	}
	if len(lvl.Segments) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSegments, file)
	}
	if lvl.GroundLayer == 0 {
		lvl.GroundLayer = 1
	}
	return &lvl, nil
}
