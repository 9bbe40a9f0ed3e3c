package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the settings of one mesh conversion.
type Config struct {
	// Paths
	Input   string `json:"input"`
	Output  string `json:"output"`
	Preview string `json:"preview"`

	// Ingestion
	Scale      float64 `json:"scale"`
	ReverseDXF bool    `json:"reverse_dxf"`

	// Build
	Parallel      bool `json:"parallel"`
	ParallelDepth int  `json:"parallel_depth"`
	DumpTree      bool `json:"dump_tree"`

	// Export
	ASCII       bool   `json:"ascii_stl"`
	SolidName   string `json:"solid_name"`
	PreviewSize int    `json:"preview_size"`
	Supersample int    `json:"supersample"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input         string
	Output        string
	Preview       string
	Scale         float64
	ReverseDXF    bool
	Parallel      bool
	ParallelDepth int
	DumpTree      bool
	ASCII         bool
	SolidName     string
	PreviewSize   int
}

// Resolve applies flags over the file values, then fills in any empty field
// with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.ParallelDepth > 0 {
		c.ParallelDepth = flags.ParallelDepth
	}
	if flags.SolidName != "" {
		c.SolidName = flags.SolidName
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	c.ReverseDXF = c.ReverseDXF || flags.ReverseDXF
	c.Parallel = c.Parallel || flags.Parallel
	c.DumpTree = c.DumpTree || flags.DumpTree
	c.ASCII = c.ASCII || flags.ASCII

	if c.Output == "" && c.Input != "" {
		c.Output = strings.TrimSuffix(c.Input, filepath.Ext(c.Input)) + ".stl"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.ParallelDepth <= 0 {
		c.ParallelDepth = 4
	}
	if c.SolidName == "" {
		c.SolidName = "bspmesh"
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: no input mesh")
	}
	if c.Output == c.Input {
		return fmt.Errorf("config: output %s would overwrite the input", c.Output)
	}
	return nil
}
