package config

import (
	"fmt"
	"io/ioutil"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/mmadfox/geocontains"
)

type Config struct {
	Logger   logger      `yaml:"logger"`
	Contains contains    `yaml:"contains"`
	Locate   locate      `yaml:"locate"`
	GeoJSON  geojsonConf `yaml:"geojson"`
}

type contains struct {
	geocontains.Tolerance `yaml:",inline"`
	MaxDepth              int `yaml:"max_depth"`
}

type locate struct {
	Workers int `yaml:"workers"`
}

type geojsonConf struct {
	Rewind *bool `yaml:"rewind"`
}

func Default() *Config {
	return &Config{}
}

func FromBytes(data []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func FromFile(filename string) (*Config, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromBytes(raw)
}

func (c *Config) Validate() error {
	if _, err := geocontains.ContainsWith(nil, geocontains.Point{}, c.Options()); err != nil {
		return fmt.Errorf("config: contains: %w", err)
	}
	if c.Locate.Workers < 0 {
		return fmt.Errorf("config: locate: negative workers %d", c.Locate.Workers)
	}
	return nil
}

// Options returns the containment options; zero values fall back to the
// package defaults.
func (c *Config) Options() geocontains.Options {
	return geocontains.Options{
		Tolerance: c.Contains.Tolerance,
		MaxDepth:  c.Contains.MaxDepth,
	}
}

func (c *Config) Workers() int {
	if c.Locate.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Locate.Workers
}

// Rewind reports whether polygons are reoriented from RFC 7946 order.
// Defaults to true.
func (c *Config) Rewind() bool {
	if c.GeoJSON.Rewind == nil {
		return true
	}
	return *c.GeoJSON.Rewind
}
