package main

import (
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"voxcraft/internal/config"
	"voxcraft/internal/graphics"
	"voxcraft/internal/input"
	"voxcraft/internal/logger"
	"voxcraft/internal/player"
	"voxcraft/internal/profiling"
	"voxcraft/internal/world"
)

const fontPath = "assets/fonts/mono.ttf"

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// First run: persist the defaults so there is a file to edit.
	if config.ConfigPath() == "" && config.FindConfigFile() == "" {
		if err := config.Default().Save(); err != nil {
			logger.Warn("write default config", zap.Error(err))
		}
	}

	if err := glfw.Init(); err != nil {
		logger.Fatal("glfw init", zap.Error(err))
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg)
	if err != nil {
		logger.Fatal("create window", zap.Error(err))
	}

	renderer, err := graphics.NewRenderer(cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.FOV, cfg.World.AtlasPath)
	if err != nil {
		logger.Fatal("init renderer", zap.Error(err))
	}
	defer renderer.Dispose()

	// The overlay needs a font file; run without it when none is present.
	overlay, err := graphics.NewOverlay(fontPath, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		logger.Warn("debug overlay disabled", zap.Error(err))
		overlay = nil
	}

	dev := graphics.NewGLDevice()
	w, spawn, err := buildWorld(dev, cfg.World.RenderDistance)
	if err != nil {
		logger.Fatal("build world", zap.Error(err))
	}

	p := player.New(w, cfg.Player, spawn)
	im := input.NewManager()
	im.SetCallbacks(window)

	paused := false
	window.SetCursorPosCallback(func(win *glfw.Window, xpos, ypos float64) {
		if !paused {
			p.HandleMouseMovement(win, xpos, ypos)
		}
	})
	window.SetFramebufferSizeCallback(func(win *glfw.Window, width, height int) {
		renderer.UpdateViewport(width, height)
		if overlay != nil {
			overlay.SetViewport(width, height)
		}
	})

	logger.Info("world ready",
		zap.Int("chunks", len(w.Chunks())),
		zap.Int("render_distance", cfg.World.RenderDistance),
	)

	runGameLoop(window, renderer, overlay, dev, w, p, im, &paused)
}

func setupWindow(cfg *config.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	var monitor *glfw.Monitor
	if cfg.Graphics.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(cfg.Graphics.Width, cfg.Graphics.Height, "voxcraft", monitor, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if cfg.Graphics.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// buildWorld generates and meshes the starting area: a square of terrain
// columns around the origin, one chunk of stone underneath each.
func buildWorld(dev *graphics.GLDevice, renderDistance int) (*world.World, mgl32.Vec3, error) {
	reg := world.DefaultRegistry()
	gen, err := world.NewGenerator(reg)
	if err != nil {
		return nil, mgl32.Vec3{}, err
	}

	w := world.NewWorld(reg)
	start := time.Now()
	for cx := -renderDistance; cx <= renderDistance; cx++ {
		for cz := -renderDistance; cz <= renderDistance; cz++ {
			for _, cy := range []int{-1, 0} {
				c := gen.GenerateChunk(world.ChunkCoord{X: cx, Y: cy, Z: cz})
				if err := c.GenMesh(dev, reg); err != nil {
					return nil, mgl32.Vec3{}, err
				}
				w.AddChunk(c)
			}
		}
	}
	logger.Info("terrain generated",
		zap.Int("chunks", len(w.Chunks())),
		zap.Duration("took", time.Since(start)),
	)

	spawnY := float32(gen.SurfaceHeight(0, 0)) + 8
	return w, mgl32.Vec3{0.5, spawnY, 0.5}, nil
}

func runGameLoop(
	window *glfw.Window,
	renderer *graphics.Renderer,
	overlay *graphics.Overlay,
	dev *graphics.GLDevice,
	w *world.World,
	p *player.Player,
	im *input.Manager,
	paused *bool,
) {
	lastTime := time.Now()

	hotbar := []input.Action{
		input.ActionHotbar1,
		input.ActionHotbar2,
		input.ActionHotbar3,
		input.ActionHotbar4,
		input.ActionHotbar5,
	}

	for !window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if im.JustPressed(input.ActionPause) {
			*paused = !*paused
			if *paused {
				window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			} else {
				window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
				p.FirstMouse = true
			}
		}
		if overlay != nil && im.JustPressed(input.ActionToggleOverlay) {
			overlay.Toggle()
		}

		if !*paused {
			for slot, action := range hotbar {
				if im.JustPressed(action) {
					p.SelectSlot(slot)
				}
			}

			func() { defer profiling.Track("player.Update")(); p.Update(im, dt) }()

			if im.JustPressed(input.ActionMouseLeft) {
				p.BreakBlock(dev)
			}
			if im.JustPressed(input.ActionMouseRight) {
				p.PlaceBlock(dev)
			}
		}

		renderer.Render(w, p)
		if overlay != nil {
			overlay.Render(p)
		}

		im.PostUpdate()
		window.SwapBuffers()
		glfw.PollEvents()
	}
}
