package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"rigcore/internal/mirror"
	"rigcore/internal/skeleton"
)

func main() {
	jointsPath := flag.String("joints", "", "Joint set JSON file")
	center := flag.Float64("center", 0, "Mirror axis center (pixels)")
	axis := flag.String("axis", "vertical", "Mirror axis: vertical or horizontal")
	rename := flag.Bool("rename", true, "Swap left/right name tokens on mirrored joints")
	detect := flag.Bool("detect", false, "Detect existing left/right pairs instead of synthesizing")
	tolerance := flag.Float64("tolerance", 20, "Pair detection tolerance in pixels")
	outputDir := flag.String("output", ".", "Output directory")

	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *jointsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no joint set. Use -joints flag.")
		os.Exit(1)
	}

	points, err := loadJoints(*jointsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := skeleton.Validate(points); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *detect {
		pairs := mirror.DetectPairs(points, *center, *tolerance)
		log.Info().Int("pairs", len(pairs)).Msg("pairs detected")

		out := struct {
			Pairs       []mirror.Pair       `json:"pairs"`
			Constraints []mirror.Constraint `json:"constraints"`
		}{pairs, mirror.CreateConstraints(pairs)}

		if err := writeJSON(filepath.Join(*outputDir, "pairs.json"), out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := mirror.DefaultConfig()
	cfg.Axis = mirror.Axis(*axis)
	cfg.AutoRename = *rename

	mirrored := mirror.GeneratePoints(points, *center, cfg)
	log.Info().Int("joints", len(mirrored)).Msg("mirrored joints generated")

	if err := writeJSON(filepath.Join(*outputDir, "mirrored.json"), mirrored); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadJoints(path string) ([]*skeleton.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var points []*skeleton.Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return points, nil
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
