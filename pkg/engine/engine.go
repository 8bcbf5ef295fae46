package engine

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"globe/internal/logger"
	"globe/pkg/assets"
	"globe/pkg/config"
	"globe/pkg/globe"
	"globe/pkg/panel"
	"globe/pkg/params"
)

// Size of the generated texture used when the globe image cannot be loaded
const (
	fallbackTextureWidth  = 1024
	fallbackTextureHeight = 512
)

const statsInterval = 5 * time.Second

// Engine owns the window and drives the frame loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	renderer   Renderer
	world      *globe.World
	input      *InputHandler
	panel      *panel.Server
	isRunning  bool
	lastUpdate time.Time
	frameRate  int

	// settings changed since the panel was last told
	dirty bool
}

// NewEngine opens the window, builds the renderer and the world, and starts
// the parameter panel when enabled
func NewEngine(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Window.Samples)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Infof("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	shaders, err := assets.LoadShaders(cfg.Assets.ShaderDir)
	if err != nil {
		log.Warnf("Shader overrides not fully loaded, using built-ins where missing: %v", err)
	}

	renderer, err := NewOpenGLRenderer(window, shaders, map[string]*image.RGBA{
		globe.TextureGlobe: loadGlobeTexture(cfg.Assets.Texture, seed, log),
	}, log.With("renderer"))
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	width, height := window.GetSize()
	world, err := globe.NewWorld(cfg, log.With("world"), renderer, rand.New(rand.NewSource(seed)), width, height)
	if err != nil {
		renderer.Close()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize world: %w", err)
	}

	engine := &Engine{
		window:    window,
		config:    cfg,
		logger:    log,
		renderer:  renderer,
		world:     world,
		input:     NewInputHandler(window, world),
		isRunning: false,
		frameRate: cfg.Window.FrameRate,
	}

	if err := watchParams(world.Params, func(params.Entry) { engine.dirty = true }); err != nil {
		renderer.Close()
		glfw.Terminate()
		return nil, err
	}

	if cfg.Panel.Enabled {
		srv := panel.NewServer(cfg.Panel.Listen, log.With("panel"))
		if err := srv.Start(); err != nil {
			log.Warnf("Parameter panel disabled: %v", err)
		} else {
			engine.panel = srv
			srv.Broadcast(world.Params.Entries())
		}
	}

	return engine, nil
}

// watchParams registers fn for every entry in store
func watchParams(store *params.Store, fn params.ChangeFunc) error {
	for _, entry := range store.Entries() {
		if err := store.OnChange(entry.Name, fn); err != nil {
			return fmt.Errorf("failed to watch %s: %w", entry.Name, err)
		}
	}
	return nil
}

// loadGlobeTexture reads the globe image, generating one when it is unusable
func loadGlobeTexture(path string, seed int64, log *logger.Logger) *image.RGBA {
	img, err := assets.LoadTexture(path)
	if err == nil {
		return img
	}
	log.Warnf("Using generated globe texture: %v", err)
	return assets.FallbackTexture(fallbackTextureWidth, fallbackTextureHeight, seed)
}

// Run starts the main loop and returns when the window closes
func (e *Engine) Run() {
	e.isRunning = true
	e.lastUpdate = time.Now()

	statsStart := e.lastUpdate
	statsFrames := e.world.Frames()

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()
		deltaTime := currentTime.Sub(e.lastUpdate)
		e.lastUpdate = currentTime

		// Check for input
		e.processInput()

		// Settings from the panel land between frames
		e.syncPanel()

		e.world.Tick(deltaTime)

		// Swap buffers and poll events
		e.window.SwapBuffers()
		glfw.PollEvents()

		if elapsed := time.Since(statsStart); elapsed >= statsInterval {
			frames := e.world.Frames() - statsFrames
			e.logger.Debugf("%.1f fps, %d stars", float64(frames)/elapsed.Seconds(), e.world.Stars.Count())
			statsStart, statsFrames = time.Now(), e.world.Frames()
		}

		// Cap the frame rate when vsync is not pacing the loop
		if !e.config.Window.VSync && e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput handles keyboard shortcuts
func (e *Engine) processInput() {
	e.input.Update()
	store := e.world.Params

	if e.input.IsKeyPressed(glfw.KeyEscape) {
		e.isRunning = false
	}

	if e.input.IsKeyPressed(glfw.KeySpace) {
		if stopped, err := store.Toggle(params.StopEarth); err == nil {
			e.logger.Infof("Earth rotation %s", onOff(!stopped))
		}
	}

	if e.input.IsKeyPressed(glfw.KeyS) {
		if stopped, err := store.Toggle(params.StopStars); err == nil {
			e.logger.Infof("Star drift %s", onOff(!stopped))
		}
	}

	if e.input.IsKeyPressed(glfw.KeyR) {
		e.world.Stars.Regenerate(store.Int(params.NumStars))
	}
}

// syncPanel applies queued panel edits and pushes the resulting state back
func (e *Engine) syncPanel() {
	if e.panel == nil {
		return
	}
	if n := e.panel.Apply(e.world.Params); n > 0 || e.dirty {
		e.panel.Broadcast(e.world.Params.Entries())
		e.dirty = false
	}
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down engine...")
	if e.panel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := e.panel.Shutdown(ctx); err != nil {
			e.logger.Warnf("Panel shutdown: %v", err)
		}
		cancel()
	}
	e.renderer.Close()
	glfw.Terminate()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
