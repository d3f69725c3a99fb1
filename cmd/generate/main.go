package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"portfolio.dev/internal/scene"
	"portfolio.dev/internal/services"
)

var allLevels = []scene.Level{scene.Low, scene.Medium, scene.High}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir>")
		fmt.Println("       generate <output-dir> <preset>  (generate a single preset: low, medium, high)")
		os.Exit(1)
	}

	outputDir := os.Args[1]
	levels := allLevels
	if len(os.Args) > 2 {
		level, err := scene.ParseLevel(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		levels = []scene.Level{level}
	}

	failed := generate(outputDir, levels, os.Stdout, os.Stderr)
	if failed > 0 {
		os.Exit(1)
	}
	fmt.Println("Done!")
}

// generate writes <outputDir>/scene/<preset>.json for each level and returns
// how many presets failed
func generate(outputDir string, levels []scene.Level, stdout, stderr io.Writer) int {
	sceneDir := filepath.Join(outputDir, "scene")
	if err := os.MkdirAll(sceneDir, 0755); err != nil {
		fmt.Fprintf(stderr, "Failed to create output directory: %v\n", err)
		return len(levels)
	}

	failed := 0
	for _, level := range levels {
		fmt.Fprintf(stdout, "Generating %s scene...\n", level)

		resp, err := services.BuildScene(scene.PresetFor(level))
		if err != nil {
			fmt.Fprintf(stderr, "  ERROR: %v\n", err)
			failed++
			continue
		}

		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "  ERROR marshaling JSON: %v\n", err)
			failed++
			continue
		}

		filename := level.String() + ".json"
		if err := os.WriteFile(filepath.Join(sceneDir, filename), data, 0644); err != nil {
			fmt.Fprintf(stderr, "  ERROR writing file: %v\n", err)
			failed++
			continue
		}

		fmt.Fprintf(stdout, "  Created %s (%d nodes, %d edges)\n", filename, len(resp.Nodes), len(resp.Edges))
	}
	return failed
}
