package main

import (
	"fmt"
	"os"
	"runtime"

	"bloom-gl/assets"
	"bloom-gl/config"
	"bloom-gl/effects"
	"bloom-gl/libgl"
	"bloom-gl/libutil"
	"bloom-gl/log"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
	"github.com/urfave/cli"
)

var logger = log.New("bloomdemo")

func main() {
	app := cli.NewApp()
	app.Name = "bloomdemo"
	app.Usage = "render a lit scene with an HDR bloom post process"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML config file, reloaded when it changes",
		},
		cli.StringFlag{
			Name:  "scene",
			Usage: "scene variant (grass or street), overrides the config",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "profile",
			Usage: "write a cpu or mem profile to the working directory",
		},
		cli.BoolFlag{
			Name:  "enable-compatibility-profile",
			Usage: "request a compatibility instead of a core context",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// overrides holds the command line values that win over the config file,
// including every config reloaded from disk.
type overrides struct {
	Scene       string
	Verbose     bool
	VeryVerbose bool
}

func overridesFrom(ctx *cli.Context) overrides {
	return overrides{
		Scene:       ctx.String("scene"),
		Verbose:     ctx.Bool("v"),
		VeryVerbose: ctx.Bool("vv"),
	}
}

func (o overrides) Apply(cfg *config.Config) error {
	if o.Scene == "" {
		return nil
	}
	cfg.Scene.Variant = o.Scene
	return cfg.Validate()
}

func (o overrides) LogLevel(cfg *config.Config) log.Level {
	level, _ := log.ParseLevel(cfg.Log.Level)
	if o.Verbose {
		level = log.Info
	}
	if o.VeryVerbose {
		level = log.Debug
	}
	return level
}

func startProfile(mode string) (interface{ Stop() }, error) {
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	}
	return nil, fmt.Errorf("unknown profile mode %q, expected cpu or mem", mode)
}

func run(ctx *cli.Context) error {
	cfgPath := ctx.String("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	flags := overridesFrom(ctx)
	if err := flags.Apply(cfg); err != nil {
		return err
	}
	log.SetLevel(flags.LogLevel(cfg))

	prof, err := startProfile(ctx.String("profile"))
	if err != nil {
		return err
	}
	if prof != nil {
		defer prof.Stop()
	}

	var watcher *config.Watcher
	if cfgPath != "" {
		if watcher, err = config.Watch(cfgPath); err != nil {
			logger.Warningf("config changes will not be picked up: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	win, err := initGLFW(cfg.Window, ctx.Bool("enable-compatibility-profile"))
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	if err := libgl.InitContext(glfw.GetProcAddress); err != nil {
		return err
	}
	libgl.EnableDebugOutput()

	return loop(win, cfg, flags, watcher)
}

func initGLFW(cfg config.Window, compatibility bool) (*glfw.Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	if compatibility {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.Vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return win, nil
}

type app struct {
	cfg     *config.Config
	flags   overrides
	win     *glfw.Window
	state   *effects.BloomState
	effect  *effects.BloomEffect
	camera  *Camera
	scene   *Scene
	sky     *Sky
	gui     *ImGui
	overlay *Overlay
}

func loop(win *glfw.Window, cfg *config.Config, flags overrides, watcher *config.Watcher) error {
	a := &app{cfg: cfg, flags: flags, win: win}
	defer a.release()

	loader, err := assets.NewLoader(cfg.Assets.Dir, cfg.Assets.CacheSize)
	if err != nil {
		return err
	}

	fbWidth, fbHeight := win.GetFramebufferSize()
	a.state = effects.NewBloomState(cfg.Bloom)
	if a.effect, err = effects.NewBloomEffect(cfg.Bloom, a.state, fbWidth, fbHeight); err != nil {
		return fmt.Errorf("could not create bloom effect: %w", err)
	}

	a.camera = NewCamera(cfg.Scene.Camera, float32(fbWidth)/float32(fbHeight))
	if a.sky, err = NewSky(loader, cfg.Assets.Skybox); err != nil {
		return err
	}
	if a.scene, err = NewScene(cfg.Scene, cfg.Bloom.BrightThreshold, a.camera, a.state, a.sky); err != nil {
		return err
	}

	imguiShader, err := LoadPipeline("ImGui", Res_ImguiVshSrc, Res_ImguiFshSrc, nil)
	if err != nil {
		return err
	}
	Input = NewInputManager(win)
	a.gui = NewImGui(imguiShader, Input.AddScroll)
	a.overlay = NewOverlay(a.camera, a.state)

	controls := &Controls{ctx: win, camera: a.camera, state: a.state}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.resize(width, height)
	})

	var updates <-chan *config.Config
	if watcher != nil {
		updates = watcher.Updates()
	}

	for !win.ShouldClose() {
		glfw.PollEvents()
		Input.Update(win)

		select {
		case next := <-updates:
			a.reload(next)
		default:
		}

		controls.Update()
		a.overlay.Build(a.effect, Input.TimeDelta())

		if a.effect != nil {
			if err := a.effect.Frame(a.scene, nil); err != nil {
				logger.Errorf("frame failed: %v", err)
			}
			if controls.DumpRequested {
				controls.DumpRequested = false
				if err := DumpFrame(a.effect, a.cfg); err != nil {
					logger.Errorf("%v", err)
				}
			}
		}

		a.gui.Draw()
		win.SwapBuffers()
	}
	return nil
}

// resize follows the framebuffer; a minimized window keeps the old targets.
func (a *app) resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	a.camera.Aspect = float32(width) / float32(height)
	if err := a.effect.Resize(width, height); err != nil {
		logger.Errorf("could not resize bloom targets: %v", err)
	}
}

// reload applies a config that changed on disk. Changes that alter GL resources rebuild them.
func (a *app) reload(next *config.Config) {
	if err := a.flags.Apply(next); err != nil {
		logger.Warningf("ignoring config change: %v", err)
		return
	}
	prev := a.cfg
	a.cfg = next

	log.SetLevel(a.flags.LogLevel(next))

	if next.Bloom.ExposureDefault != prev.Bloom.ExposureDefault {
		a.state.SetExposure(next.Bloom.ExposureDefault)
	}
	if next.Bloom.Enabled != prev.Bloom.Enabled {
		a.state.SetEnabled(next.Bloom.Enabled)
	}
	a.scene.SetBrightThreshold(next.Bloom.BrightThreshold)

	rebuild := next.Bloom
	rebuild.ExposureDefault, rebuild.Enabled, rebuild.BrightThreshold = prev.Bloom.ExposureDefault, prev.Bloom.Enabled, prev.Bloom.BrightThreshold
	if rebuild != prev.Bloom {
		fbWidth, fbHeight := a.win.GetFramebufferSize()
		effect, err := effects.NewBloomEffect(next.Bloom, a.state, fbWidth, fbHeight)
		if err != nil {
			logger.Errorf("keeping the previous bloom settings: %v", err)
		} else {
			a.effect.Release()
			a.effect = effect
		}
	}

	a.scene.Apply(next.Scene)
	logger.Notice("applied config change")
}

func (a *app) release() {
	cleanup := []libutil.Deleter{}
	if a.effect != nil {
		cleanup = append(cleanup, releaser(a.effect.Release))
	}
	if a.sky != nil {
		cleanup = append(cleanup, a.sky)
	}
	if a.scene != nil {
		cleanup = append(cleanup, a.scene)
	}
	if a.gui != nil {
		cleanup = append(cleanup, a.gui)
	}
	libutil.DeleteAll(cleanup)
	libutil.ReleaseQuad()
	gl.Finish()
}

type releaser func()

func (r releaser) Delete() {
	r()
}
