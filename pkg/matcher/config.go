package matcher

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// RouteConfig declares one route and its children. Paths of children are
// relative to the parent unless they start with "/".
//
// Component and Components name entries of the component registry,
// Guard names a guard registered with WithGuards. Views and BeforeEnter
// are the code-only counterparts and take precedence.
type RouteConfig struct {
	Path       string            `yaml:"path" toml:"path"`
	Name       string            `yaml:"name,omitempty" toml:"name,omitempty"`
	Component  string            `yaml:"component,omitempty" toml:"component,omitempty"`
	Components map[string]string `yaml:"components,omitempty" toml:"components,omitempty"`
	Redirect   string            `yaml:"redirect,omitempty" toml:"redirect,omitempty"`
	Guard      string            `yaml:"beforeEnter,omitempty" toml:"beforeEnter,omitempty"`
	Meta       map[string]any    `yaml:"meta,omitempty" toml:"meta,omitempty"`
	Props      map[string]any    `yaml:"props,omitempty" toml:"props,omitempty"`
	Children   []RouteConfig     `yaml:"children,omitempty" toml:"children,omitempty"`

	Views       map[string]*route.Component `yaml:"-" toml:"-"`
	BeforeEnter route.Guard                 `yaml:"-" toml:"-"`
}

// Table is the on-disk shape of a route table.
type Table struct {
	Routes []RouteConfig `yaml:"routes" toml:"routes"`
}

// Format identifies a route table encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format by file extension.
func FormatFromPath(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Decode reads a route table in the given format.
func Decode(r io.Reader, format Format) ([]RouteConfig, error) {
	var table Table
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&table); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrDecodeTable, err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&table); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeTable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return table.Routes, nil
}

// LoadFile reads a route table from a .yaml, .yml or .toml file.
func LoadFile(name string) ([]RouteConfig, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeTable, err)
	}
	return Decode(bytes.NewReader(data), format)
}
