// gridview builds a grid from the configuration and renders it in a window.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/trianglegrid/internal/config"
	"github.com/Faultbox/trianglegrid/internal/engine/input"
	"github.com/Faultbox/trianglegrid/internal/engine/scene"
	"github.com/Faultbox/trianglegrid/internal/engine/window"
	"github.com/Faultbox/trianglegrid/internal/logger"
	"github.com/Faultbox/trianglegrid/internal/world"
	"github.com/Faultbox/trianglegrid/pkg/math"
)

func main() {
	config.ParseFlags()

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

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "gridview",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := scene.NewGridRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	m, err := world.Load(cfg.Grid)
	if err != nil {
		return err
	}
	defer m.Close()

	cam := scene.FrameBounds(m.Grid.Bounds())
	in := input.New()
	lightDir := math.Vec3{X: 0.4, Y: 1, Z: 0.3}

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.12, 0.13, 0.16, 1)

	for !in.Update() {
		if in.Triggered(input.ActionRebuild) {
			if err := m.Rebuild(); err != nil {
				logger.Warn("rebuild failed", zap.Error(err))
			}
		}
		if in.Triggered(input.ActionToggleWireframe) {
			renderer.Wireframe = !renderer.Wireframe
		}
		updateCamera(&cam)

		mesh, err := m.Grid.Mesh(renderer)
		if err != nil {
			return fmt.Errorf("grid mesh: %w", err)
		}

		w, h := win.Size()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		renderer.Render(mesh, cam.ViewProj(float32(w)/float32(max(h, 1))), lightDir)
		win.SwapBuffers()
	}

	logger.Info("viewer closed")
	return nil
}

func updateCamera(cam *scene.OrbitCamera) {
	const turn = 0.02
	if input.Held(sdl.SCANCODE_LEFT) {
		cam.Rotate(-turn, 0)
	}
	if input.Held(sdl.SCANCODE_RIGHT) {
		cam.Rotate(turn, 0)
	}
	if input.Held(sdl.SCANCODE_UP) {
		cam.Rotate(0, turn)
	}
	if input.Held(sdl.SCANCODE_DOWN) {
		cam.Rotate(0, -turn)
	}
	if input.Held(sdl.SCANCODE_W) {
		cam.Zoom(0.98)
	}
	if input.Held(sdl.SCANCODE_S) {
		cam.Zoom(1.02)
	}
}
