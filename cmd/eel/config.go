package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/eel"
)

// Config is the contents of a configuration file.
//
//	pools:
//	  main: [g, frame]
//	vars:
//	  main: {g: 1}
//	functions:
//	  - name: init
//	    pool: main
//	    source: "frame = 0"
//	  - name: step
//	    pool: main
//	    file: step.eel
//	quirks: [buffer-aliasing]
//	precise: true
//	seed: 7
type Config struct {
	Pools     map[string][]string           `yaml:"pools"`
	Vars      map[string]map[string]float64 `yaml:"vars"`
	Functions []FunctionConfig              `yaml:"functions"`
	Quirks    []string                      `yaml:"quirks"`
	Precise   bool                          `yaml:"precise"`
	Seed      uint64                        `yaml:"seed"`

	// dir is the directory containing the file, against which function
	// file paths are resolved.
	dir string
}

// FunctionConfig is one named function of a module.
type FunctionConfig struct {
	Name   string `yaml:"name"`
	Pool   string `yaml:"pool"`
	Source string `yaml:"source"`
	File   string `yaml:"file"`
}

// loadConfig reads and decodes a configuration file. Unknown keys are errors.
func loadConfig(path string) (*Config, error) {
	src, err := readSource(nil, path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, errors.New(yaml.FormatError(err, false, true))
	}
	for i, f := range cfg.Functions {
		switch {
		case f.Name == "":
			return nil, fmt.Errorf("function %d has no name", i)
		case f.Source != "" && f.File != "":
			return nil, fmt.Errorf("function %s has both source and file", f.Name)
		}
	}
	return &cfg, nil
}

// envOptions converts the configuration to environment options. Quirks are
// not included.
func (c *Config) envOptions() ([]eel.EnvOption, error) {
	opts := []eel.EnvOption{eel.PoolGlobals(c.Pools)}
	for pool, vars := range c.Vars {
		for name := range vars {
			if !c.declared(pool, name) {
				return nil, fmt.Errorf("variable %s in pool %q is not declared in pools", name, pool)
			}
		}
	}
	if c.Precise {
		opts = append(opts, eel.PreciseMath())
	}
	if c.Seed != 0 {
		opts = append(opts, eel.Seed(c.Seed))
	}
	return opts, nil
}

func (c *Config) declared(pool, name string) bool {
	for _, g := range c.Pools[pool] {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

// init sets the configured initial values of globals in env.
func (c *Config) init(env *eel.Env) {
	for pool, vars := range c.Vars {
		for name, v := range vars {
			env.SetVar(pool, name, v)
		}
	}
}

// module builds the configured functions into a module over env.
func (c *Config) module(a *app, env *eel.Env) (*eel.Module, error) {
	m := eel.NewModule(env)
	for _, f := range c.Functions {
		src := f.Source
		if f.File != "" {
			path := f.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(c.dir, path)
			}
			s, err := readSource(a.in, path)
			if err != nil {
				return nil, err
			}
			src = s
		}
		if err := m.Add(f.Name, src, f.Pool, a.quirks); err != nil {
			diagnose(a.errw, f.Name, src, err, env.Funcs())
			return nil, errReported
		}
	}
	return m, nil
}
