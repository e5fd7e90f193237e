// SPDX-License-Identifier: MIT

// Package config loads materialization and display settings from YAML or
// TOML files.
//
// Keys (both formats):
//
//	intercept:      true         # prepend an intercept column
//	intercept_name: intercept
//	clean_names:    true
//	contrast:       treatment    # treatment | sum | helmert
//	parallel:       0            # >1 materializes terms concurrently
//	color:          auto         # auto | always | never
//
// Keys missing from a file keep their Default value; unknown keys are errors.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modelmatrix/design"
)

// ErrConfig is wrapped by every error this package returns.
var ErrConfig = errors.New("config: invalid configuration")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config mirrors design.Options plus display settings.
type Config struct {
	Intercept     bool   `yaml:"intercept" toml:"intercept"`
	InterceptName string `yaml:"intercept_name" toml:"intercept_name"`
	CleanNames    bool   `yaml:"clean_names" toml:"clean_names"`
	Contrast      string `yaml:"contrast" toml:"contrast"`
	Parallel      int    `yaml:"parallel" toml:"parallel"`
	Color         string `yaml:"color" toml:"color"`
}

// Default returns the built-in settings.
func Default() Config {
	o := design.DefaultOptions()
	return Config{
		Intercept:     o.IncludeIntercept,
		InterceptName: o.InterceptName,
		CleanNames:    o.CleanNames,
		Contrast:      o.Contrast.String(),
		Parallel:      o.Parallel,
		Color:         ColorAuto,
	}
}

// Load reads a .yaml, .yml or .toml file over Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ReadYAML(f)
	case ".toml":
		return ReadTOML(f)
	default:
		return Config{}, fmt.Errorf("%w: unknown file extension %q", ErrConfig, ext)
	}
}

// ReadYAML decodes YAML over Default.
func ReadYAML(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return c, c.Validate()
}

// ReadTOML decodes TOML over Default.
func ReadTOML(r io.Reader) (Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return Config{}, fmt.Errorf("%w: unknown keys %v", ErrConfig, extra)
	}
	return c, c.Validate()
}

// Validate checks the enumerated fields and the resulting design options.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrConfig, c.Color)
	}
	_, err := c.Options()
	return err
}

// Options converts c into design options. The logger is the design default.
func (c Config) Options() (design.Options, error) {
	kind, err := design.ParseContrast(c.Contrast)
	if err != nil {
		return design.Options{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	o := design.DefaultOptions()
	o.IncludeIntercept = c.Intercept
	o.InterceptName = c.InterceptName
	o.CleanNames = c.CleanNames
	o.Contrast = kind
	o.Parallel = c.Parallel
	if err = o.Validate(); err != nil {
		return design.Options{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return o, nil
}

// UseColor resolves the color mode for output written to f.
func (c Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
