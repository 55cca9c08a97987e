package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"rigcore/internal/config"
	"rigcore/internal/maskio"
	"rigcore/internal/mesh"
	"rigcore/internal/preview"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	maskPath := flag.String("mask", "", "Part mask image (PNG or TGA, alpha channel)")
	density := flag.Float64("density", 0, "Vertex density (default: 10)")
	edges := flag.Bool("edges", true, "Sample 1px boundary vertices")
	optimize := flag.Int("optimize", 0, "Decimation level 0-9")
	outputDir := flag.String("output", "", "Output directory (default: .)")
	withPreview := flag.Bool("preview", false, "Also write a wireframe WebP")

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
		MaskPath:  *maskPath,
		OutputDir: *outputDir,
		Density:   *density,
	})
	if *optimize > 0 {
		cfg.OptimizeLevel = *optimize
	}
	cfg.EdgeSmoothing = *edges

	if cfg.MaskPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no mask image. Use -mask flag or config.json.")
		os.Exit(1)
	}

	mask, err := maskio.Load(cfg.MaskPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	w := mask.Bounds().Dx()
	h := mask.Bounds().Dy()

	m := mesh.Generate(w, h, cfg.VertexDensity, mask, cfg.EdgeSmoothing)
	log.Info().Int("vertices", len(m.Vertices)).Int("triangles", len(m.Triangles)).Msg("mesh generated")

	if cfg.OptimizeLevel > 0 {
		before := len(m.Vertices)
		m = mesh.Optimize(m, cfg.OptimizeLevel)
		log.Info().Int("before", before).Int("after", len(m.Vertices)).Msg("mesh optimized")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(cfg.OutputDir, "mesh.json")
	if err := writeJSON(outPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("path", outPath).Msg("mesh written")

	if *withPreview {
		img := preview.RenderMesh(m, w, h)
		previewPath := filepath.Join(cfg.OutputDir, "mesh.webp")
		if err := preview.WriteWebP(previewPath, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log.Info().Str("path", previewPath).Msg("preview written")
	}
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
