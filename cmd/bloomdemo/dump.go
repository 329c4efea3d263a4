package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bloom-gl/config"
	"bloom-gl/effects"
	"bloom-gl/libgl"
	"bloom-gl/libio"

	"github.com/go-gl/gl/v4.5-core/gl"
)

const dumpDir = "dump"

// DumpFrame writes the capture outputs and the last blur result as f32 images,
// together with the config needed to replay them.
func DumpFrame(effect *effects.BloomEffect, cfg *config.Config) error {
	if err := os.MkdirAll(dumpDir, 0o755); err != nil {
		return fmt.Errorf("could not create dump directory: %w", err)
	}

	capture := effect.Capture()
	textures := map[string]libgl.UnboundTexture{
		"scene":   capture.Scene(),
		"bright":  capture.Bright(),
		"blurred": effect.Blurred(),
	}
	for name, tex := range textures {
		if tex == nil {
			continue
		}
		img := libio.NewFloatImageSize(3, tex.Width(), tex.Height())
		tex.Read(0, gl.RGB, img.Pix)
		if err := writeDump(filepath.Join(dumpDir, name+".f32"), img); err != nil {
			return err
		}
	}

	snapshot := effect.State().Snapshot()
	replay := *cfg
	replay.Bloom = effect.Config()
	replay.Bloom.ExposureDefault = snapshot.Exposure
	replay.Bloom.Enabled = snapshot.Enabled
	data, err := replay.Encode()
	if err != nil {
		return fmt.Errorf("could not encode dump config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dumpDir, "bloom.toml"), data, 0o644); err != nil {
		return fmt.Errorf("could not write dump config: %w", err)
	}

	logger.Noticef("dumped frame %d to %s", effect.Frames(), dumpDir)
	return nil
}

func writeDump(path string, img *libio.FloatImage) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not write %s: %w", path, closeErr)
		}
	}()
	if err := libio.EncodeFloatImage(file, img, libio.FloatImageCompressionFixedPoint16Lz4); err != nil {
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	return nil
}
