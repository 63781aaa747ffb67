package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// appConfig is the effective configuration after merging defaults, the
// optional config file, and explicit flags, in that order.
type appConfig struct {
	Dir         string
	Prefix      string
	Suffix      string
	MaxDepth    int
	Engine      string
	Definitions string
	Verbosity   int
	NoThrow     bool
}

// fileConfig mirrors the YAML config file. Pointer fields distinguish "absent"
// from an explicit zero (an empty suffix is a real choice).
type fileConfig struct {
	Dir         *string `yaml:"dir"`
	Prefix      *string `yaml:"prefix"`
	Suffix      *string `yaml:"suffix"`
	MaxDepth    *int    `yaml:"max_depth"`
	Engine      *string `yaml:"engine"`
	Definitions *string `yaml:"definitions"`
	Verbosity   *int    `yaml:"verbosity"`
	NoThrow     *bool   `yaml:"no_throw"`
}

func loadFileConfig(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fc, nil
}

// resolveConfig merges defaults, the config file (when --config is given),
// and flags the user actually set on the command line.
func resolveConfig(cmd *cobra.Command, flags appFlags) (appConfig, error) {
	cfg := appConfig{
		Dir:         ".",
		Suffix:      "_tool",
		Engine:      "go",
		Definitions: "compact",
	}

	if flags.configPath != "" {
		fc, err := loadFileConfig(flags.configPath)
		if err != nil {
			return appConfig{}, err
		}
		if fc.Dir != nil {
			cfg.Dir = *fc.Dir
		}
		if fc.Prefix != nil {
			cfg.Prefix = *fc.Prefix
		}
		if fc.Suffix != nil {
			cfg.Suffix = *fc.Suffix
		}
		if fc.MaxDepth != nil {
			cfg.MaxDepth = *fc.MaxDepth
		}
		if fc.Engine != nil {
			cfg.Engine = *fc.Engine
		}
		if fc.Definitions != nil {
			cfg.Definitions = *fc.Definitions
		}
		if fc.Verbosity != nil {
			cfg.Verbosity = *fc.Verbosity
		}
		if fc.NoThrow != nil {
			cfg.NoThrow = *fc.NoThrow
		}
	}

	fs := cmd.Flags()
	if fs.Changed("dir") {
		cfg.Dir = flags.dir
	}
	if fs.Changed("prefix") {
		cfg.Prefix = flags.prefix
	}
	if fs.Changed("suffix") {
		cfg.Suffix = flags.suffix
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = flags.maxDepth
	}
	if fs.Changed("engine") {
		cfg.Engine = flags.engine
	}
	if fs.Changed("definitions") {
		cfg.Definitions = flags.definitions
	}
	if fs.Changed("verbose") {
		cfg.Verbosity = flags.verbosity
	}
	if fs.Changed("no-throw") {
		cfg.NoThrow = flags.noThrow
	}

	if _, err := engineFor(cfg.Engine); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}
