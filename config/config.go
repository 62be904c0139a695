// Package config reads centerline settings from YAML.
//
//	method: voronoi
//	corners: true
//	simplify: 0.5
//	spacing: 0.005
//	tolerance: 0.25
//	decimals: 2
//
// Every key is optional; missing keys keep their defaults. Unknown keys are an
// error, so typos don't go unnoticed.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/osuushi/centerline/advanced"
	"github.com/osuushi/centerline/tessellate"
)

type Config struct {
	Method    string  `yaml:"method"`
	Corners   bool    `yaml:"corners"`
	Simplify  float64 `yaml:"simplify"`
	Spacing   float64 `yaml:"spacing"`
	Tolerance float64 `yaml:"tolerance"`
	Decimals  int     `yaml:"decimals"`
}

func Default() Config {
	flatten := tessellate.DefaultOptions()
	return Config{
		Method:    advanced.MethodTriangulation.String(),
		Spacing:   advanced.DefaultSampleSpacing,
		Tolerance: flatten.Tolerance,
		Decimals:  flatten.Decimals,
	}
}

// Read a config over the defaults.
func Load(r io.Reader) (Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()
	c, err := Load(f)
	return c, errors.Wrapf(err, "%s", path)
}

func (c Config) Validate() error {
	if _, err := ParseMethod(c.Method); err != nil {
		return err
	}
	if c.Simplify < 0 {
		return errors.Errorf("simplify must not be negative, got %g", c.Simplify)
	}
	if c.Spacing <= 0 {
		return errors.Errorf("spacing must be positive, got %g", c.Spacing)
	}
	if c.Tolerance <= 0 {
		return errors.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	return nil
}

func ParseMethod(name string) (advanced.Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case advanced.MethodTriangulation.String():
		return advanced.MethodTriangulation, nil
	case advanced.MethodVoronoi.String():
		return advanced.MethodVoronoi, nil
	}
	return 0, errors.Errorf("unknown method %q, expected triangulation or voronoi", name)
}

// Engine options for the config. Call Validate first; an unknown method falls
// back to triangulation.
func (c Config) EngineOptions() advanced.Options {
	method, _ := ParseMethod(c.Method)
	return advanced.Options{
		Method:            method,
		CornerBranches:    c.Corners,
		SimplifyTolerance: c.Simplify,
		SampleSpacing:     c.Spacing,
	}
}

func (c Config) FlattenOptions() tessellate.Options {
	return tessellate.Options{Tolerance: c.Tolerance, Decimals: c.Decimals}
}

// The config as YAML, for writing a starting point to edit.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	return data, errors.Wrap(err, "encode config")
}
