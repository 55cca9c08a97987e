package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable tool inputs and solve settings.
type Config struct {
	// Paths
	MaskPath   string `json:"mask_path"`
	JointsPath string `json:"joints_path"`
	ChainsPath string `json:"chains_path"`
	OutputDir  string `json:"output_dir"`

	// Mesh settings
	VertexDensity float64 `json:"vertex_density"`
	EdgeSmoothing bool    `json:"edge_smoothing"`
	OptimizeLevel int     `json:"optimize_level"`

	// Mirror settings
	MirrorCenter float64 `json:"mirror_center"`
	MirrorAxis   string  `json:"mirror_axis"`
	Tolerance    float64 `json:"tolerance"`

	// Solve settings
	MaxIterations int `json:"max_iterations"`
	Workers       int `json:"workers"`
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
	MaskPath   string
	JointsPath string
	ChainsPath string
	OutputDir  string
	Density    float64
	Workers    int
}

// Resolve fills in empty fields with defaults. CLI flags take priority
// when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.MaskPath != "" {
		c.MaskPath = flags.MaskPath
	}
	if flags.JointsPath != "" {
		c.JointsPath = flags.JointsPath
	}
	if flags.ChainsPath != "" {
		c.ChainsPath = flags.ChainsPath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Density > 0 {
		c.VertexDensity = flags.Density
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.VertexDensity <= 0 {
		c.VertexDensity = 10
	}
	if c.MirrorAxis == "" {
		c.MirrorAxis = "vertical"
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1.0
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = 100
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
