package driver

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the optional fnlc.yaml project file: a target triple, an
// optimization toggle, and unit search paths, read the same way a
// dwscript.yaml workspace file would configure the teacher's CLI.
// TargetTriple travels onto the lowered Module as metadata (surfaced
// in the disassembly and JSON dumps), and Optimize gates whether
// Compile runs target.Optimize's constant-folding/dead-instruction
// passes over the module before verification.
type Config struct {
	TargetTriple    string   `yaml:"target_triple"`
	Optimize        bool     `yaml:"optimize"`
	UnitSearchPaths []string `yaml:"unit_search_paths"`
}

// DefaultConfig returns the configuration used when no fnlc.yaml is
// present.
func DefaultConfig() *Config {
	return &Config{TargetTriple: "native"}
}

// LoadConfig reads and parses path. A missing file is not an error —
// it returns DefaultConfig() — since fnlc.yaml is optional project
// configuration, not a required input.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
