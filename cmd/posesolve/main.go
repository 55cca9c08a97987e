package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"rigcore/internal/batch"
	"rigcore/internal/config"
	"rigcore/internal/skeleton"
	"rigcore/internal/solver"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	jointsPath := flag.String("joints", "", "Joint set JSON file")
	chainsPath := flag.String("chains", "", "Hybrid chain JSON file")
	workers := flag.Int("workers", 0, "Worker goroutines (default: NumCPU)")
	iterations := flag.Int("iterations", 0, "CCD iteration cap (default: 100)")
	tolerance := flag.Float64("tolerance", 0, "End-effector tolerance in pixels (default: 1.0)")
	outputDir := flag.String("output", "", "Output directory (default: .)")

	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		JointsPath: *jointsPath,
		ChainsPath: *chainsPath,
		OutputDir:  *outputDir,
		Workers:    *workers,
	})
	if *iterations > 0 {
		cfg.MaxIterations = *iterations
	}
	if *tolerance > 0 {
		cfg.Tolerance = *tolerance
	}

	if cfg.JointsPath == "" || cfg.ChainsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: joint set and chain file required. Use -joints and -chains.")
		os.Exit(1)
	}

	points, err := loadJSON[[]*skeleton.Point](cfg.JointsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := skeleton.Validate(points); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	chains, err := loadJSON[[]solver.HybridChain](cfg.ChainsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	poses := batch.Solve(batch.Config{
		Workers:       cfg.Workers,
		MaxIterations: cfg.MaxIterations,
		Tolerance:     cfg.Tolerance,
		Log:           log,
	}, chains, points)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(cfg.OutputDir, "poses.json")
	if err := writeJSON(outPath, poses); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("path", outPath).Int("chains", len(poses)).Msg("poses written")
}

func loadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
