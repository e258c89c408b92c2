package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config controls which optimizer passes the registry runs, plus the
// diagnostics and REPL display settings. PassOrder is loaded and saved
// with the rest of the file, but the registry does not read it: enabled
// passes always run as unary-plus removal, constant propagation, then
// dead-code elimination.
type Config struct {
	Optimize struct {
		EnableUnaryPlusRemoval    bool     `toml:"enable_unary_plus_removal"`
		EnableConstantPropagation bool     `toml:"enable_constant_propagation"`
		EnableDeadCodeElimination bool     `toml:"enable_dead_code_elimination"`
		PassOrder                 []string `toml:"pass_order"`
	} `toml:"optimize"`

	Diagnostics struct {
		ColorOutput  bool `toml:"color_output"`
		ShowFragment bool `toml:"show_fragment"`
	} `toml:"diagnostics"`

	REPL struct {
		HistorySize  int    `toml:"history_size"`
		PromptString string `toml:"prompt_string"`
	} `toml:"repl"`
}

// DefaultConfig returns a configuration with every pass enabled, run in
// the order the pipeline documents: redundant unary-plus removal first
// (it never creates new fold opportunities but simplifies the tree for
// the passes after it), then constant propagation, then dead-code
// elimination last, since only a fully-folded tree exposes all
// unreachable statements.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Optimize.EnableUnaryPlusRemoval = true
	cfg.Optimize.EnableConstantPropagation = true
	cfg.Optimize.EnableDeadCodeElimination = true
	cfg.Optimize.PassOrder = []string{"unary_plus_removal", "constant_propagation", "dead_code_elimination"}

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.ShowFragment = true

	cfg.REPL.HistorySize = 1000
	cfg.REPL.PromptString = "pljit> "

	return cfg
}

// Path returns the file Load reads and Save writes: config.toml under
// the user's standard configuration directory. When the platform
// reports no such directory, the file lives in the working directory
// instead.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "pljit", "config.toml")
}

// Load reads the configuration from Path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom overlays the file at path on top of the defaults. A missing
// file is not an error: the defaults apply unchanged.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to Path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to path, creating parent directories
// as needed. The TOML is encoded to memory first so a failed encode
// never truncates an existing file.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}
