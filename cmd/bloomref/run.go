package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"bloom-gl/config"
	"bloom-gl/effects"
	"bloom-gl/libio"

	"github.com/chewxy/math32"
	"github.com/urfave/cli"
	"golang.org/x/image/draw"
)

const (
	implGl = "opengl"
	implSw = "software"
)

const pngGamma = 2.2

type frame struct {
	scene, bright *libio.FloatImage
	cfg           *config.Config
}

func loadFrame(ctx *cli.Context) (*frame, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing dump directory argument")
	}
	dir := ctx.Args().First()

	cfgPath := ctx.String("config")
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, "bloom.toml")
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			cfgPath = ""
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	scene, err := readFrameImage(dir, "scene")
	if err != nil {
		return nil, err
	}
	bright, err := readFrameImage(dir, "bright")
	if err != nil {
		return nil, err
	}
	if !scene.SameSize(bright) {
		return nil, fmt.Errorf("%w: scene is %dx%d, bright is %dx%d", effects.ErrTargetMismatch, scene.Width, scene.Height, bright.Width, bright.Height)
	}
	return &frame{scene: scene, bright: bright, cfg: cfg}, nil
}

// readFrameImage prefers the float dump and falls back to an 8 bit png of the same name.
func readFrameImage(dir, name string) (*libio.FloatImage, error) {
	path := filepath.Join(dir, name+".f32")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return readPngImage(filepath.Join(dir, name+".png"))
	}
	return readFloatImage(path)
}

func readPngImage(path string) (*libio.FloatImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	src, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return libio.FromRGBA(rgba, pngGamma).ToChannels(3), nil
}

func readFloatImage(path string) (*libio.FloatImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := libio.DecodeFloatImage(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, nil
}

// newProcessor creates the requested implementation. The OpenGL one needs a
// hidden window; without it the software implementation is used if fallback is set.
func newProcessor(impl string, cfg effects.Config, fallback bool) (effects.Processor, func(), error) {
	switch impl {
	case implGl:
		release, err := hiddenContext()
		if err == nil {
			var proc effects.Processor
			proc, err = effects.NewGlBloom(cfg)
			if err == nil {
				logger.Info("using OpenGL implementation")
				return proc, release, nil
			}
			release()
		}
		if !fallback {
			return nil, nil, err
		}
		logger.Warningf("%v", err)
		logger.Notice("falling back to software implementation")
		fallthrough
	case implSw:
		proc, err := effects.NewSwBloom(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using software implementation")
		return proc, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown implementation %q, expected %s or %s", impl, implGl, implSw)
}

func Run(ctx *cli.Context) error {
	setupLogging(ctx)
	runtime.LockOSThread()

	fr, err := loadFrame(ctx)
	if err != nil {
		return err
	}
	cfg := fr.cfg.Bloom
	if ctx.IsSet("iterations") {
		cfg.Iterations = ctx.Int("iterations")
	}
	if ctx.IsSet("exposure") {
		cfg.ExposureDefault = float32(ctx.Float64("exposure"))
	}
	if ctx.Bool("no-bloom") {
		cfg.Enabled = false
	}

	proc, release, err := newProcessor(ctx.String("impl"), cfg, true)
	if err != nil {
		return err
	}
	defer release()
	defer proc.Release()

	state := effects.NewBloomState(cfg).Snapshot()
	start := time.Now()
	out, err := proc.Process(fr.scene, fr.bright, state)
	if err != nil {
		return err
	}
	logger.Infof("processed %dx%d in %v", out.Width, out.Height, time.Since(start))

	// the composite already applied gamma
	return writePng(ctx.String("out"), out)
}

func writePng(path string, img *libio.FloatImage) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not write %s: %w", path, closeErr)
		}
	}()
	if err := png.Encode(file, img.ToRGBA()); err != nil {
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	logger.Noticef("wrote %s", path)
	return nil
}

func Compare(ctx *cli.Context) error {
	setupLogging(ctx)
	runtime.LockOSThread()

	fr, err := loadFrame(ctx)
	if err != nil {
		return err
	}
	maxDiff, at, err := compareFrame(fr)
	if err != nil {
		return err
	}
	fmt.Printf("max difference %.6f at pixel %d\n", maxDiff, at)
	return nil
}

// compareFrame runs both implementations on fr. It never substitutes the
// software path for a missing OpenGL context.
func compareFrame(fr *frame) (float32, int, error) {
	cfg := fr.cfg.Bloom
	state := effects.NewBloomState(cfg).Snapshot()

	results := map[string]*libio.FloatImage{}
	for _, impl := range []string{implSw, implGl} {
		proc, release, err := newProcessor(impl, cfg, false)
		if err != nil {
			if impl == implGl {
				return 0, -1, fmt.Errorf("compare needs an OpenGL 4.5 context: %w", err)
			}
			return 0, -1, err
		}
		out, err := proc.Process(fr.scene, fr.bright, state)
		proc.Release()
		release()
		if err != nil {
			return 0, -1, fmt.Errorf("%s: %w", impl, err)
		}
		results[impl] = out
	}

	maxDiff, at := maxDifference(results[implSw], results[implGl])
	return maxDiff, at, nil
}

// maxDifference returns the largest absolute channel difference and its pixel index.
func maxDifference(a, b *libio.FloatImage) (float32, int) {
	var max float32
	at := -1
	for i := range a.Pix {
		if d := math32.Abs(a.Pix[i] - b.Pix[i]); d > max {
			max, at = d, i/a.Channels
		}
	}
	return max, at
}
