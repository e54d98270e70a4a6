// gridtool builds triangle grids and inspects or exports their packed buffers.
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/trianglegrid/internal/config"
	"github.com/Faultbox/trianglegrid/internal/engine/terrain"
	"github.com/Faultbox/trianglegrid/internal/logger"
	"github.com/Faultbox/trianglegrid/internal/world"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch args[0] {
	case "info", "build":
		err = cmdInfo(cfg)
	case "layout":
		err = cmdLayout(cfg)
	case "export", "x":
		err = cmdExport(cfg)
	case "height":
		err = cmdHeight(cfg, args[1:])
	case "dump", "d":
		err = cmdDump(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridtool - triangle grid builder

Usage:
  gridtool [flags] <command> [args]

Commands:
  info              Build the grid and print buffer statistics
  layout            Print the packed vertex layout
  export            Write packed buffers to the export path (-o)
  height <x> <z>    Sample the heightmap at a world position
  dump <file>       Print the header and layout of an exported file

Flags:
  -config <file>    Config file (default ./trianglegrid.yaml)
  -rows, -columns   Grid dimensions for flat grids
  -heightmap <file> YAML heightmap
  -o <file>         Export output path
  -debug            Debug logging

Examples:
  gridtool -rows 64 -columns 64 info
  gridtool -heightmap hills.yaml -o hills.bin export
  gridtool dump hills.bin`)
}

func cmdInfo(cfg *config.Config) error {
	m, err := world.Load(cfg.Grid)
	if err != nil {
		return err
	}
	defer m.Close()

	g := m.Grid
	b := g.Bounds()
	fmt.Printf("Grid:       %d x %d tiles\n", g.Rows(), g.Columns())
	fmt.Printf("Vertices:   %d\n", g.VertexCount())
	fmt.Printf("Triangles:  %d\n", g.TriangleCount())
	fmt.Printf("Stride:     %d floats (%d bytes)\n", g.Stride(), g.Stride()*4)
	fmt.Printf("Buffers:    %d floats, %d indices\n", len(g.Vertices()), len(g.Indices()))
	fmt.Printf("Bounds:     (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	return nil
}

func cmdLayout(cfg *config.Config) error {
	m, err := world.Load(cfg.Grid)
	if err != nil {
		return err
	}
	defer m.Close()

	printLayout(m.Grid.Layout())
	return nil
}

func printLayout(layout []terrain.AttributeDescriptor) {
	fmt.Printf("%-10s %-16s %10s %6s %7s\n", "KIND", "NAME", "COMPONENTS", "SLOTS", "OFFSET")
	for _, a := range layout {
		name := a.Name
		if a.Packed {
			name += " (packed)"
		}
		fmt.Printf("%-10s %-16s %10d %6d %7d\n", a.Kind, name, a.Components, a.Slots, a.Offset)
	}
}

func cmdDump(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gridtool dump <file>")
	}

	m, err := terrain.ReadMeshFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Vertices:   %d\n", m.VertexCount)
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Printf("Stride:     %d floats (%d bytes)\n", m.Stride, m.VertexSize())
	fmt.Println()
	printLayout(m.Layout)
	return nil
}

func cmdExport(cfg *config.Config) error {
	m, err := world.Load(cfg.Grid)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Grid.ExportFile(cfg.Export.Output); err != nil {
		return err
	}
	logger.Info("exported grid",
		zap.String("path", cfg.Export.Output),
		zap.Int("vertices", m.Grid.VertexCount()),
		zap.Int("triangles", m.Grid.TriangleCount()),
	)
	return nil
}

func cmdHeight(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: gridtool height <x> <z>")
	}
	x, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("parsing x: %w", err)
	}
	z, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("parsing z: %w", err)
	}

	m, err := world.Load(cfg.Grid)
	if err != nil {
		return err
	}
	defer m.Close()

	fmt.Printf("%.4f\n", m.Heightmap.HeightAt(float32(x), float32(z)))
	return nil
}
