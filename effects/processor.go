package effects

import (
	"fmt"

	"bloom-gl/libio"
)

// Processor runs blur and composite over an already captured frame.
// Images are RGB or RGBA floats with a bottom left origin; the result is RGB.
type Processor interface {
	Process(scene, bright *libio.FloatImage, state BloomSnapshot) (*libio.FloatImage, error)
	Release()
}

func checkInputs(scene, bright *libio.FloatImage) error {
	if scene == nil || bright == nil {
		return fmt.Errorf("%w: missing input image", ErrTargetMismatch)
	}
	if !scene.SameSize(bright) {
		return fmt.Errorf("%w: scene is %dx%d, bright is %dx%d", ErrTargetMismatch, scene.Width, scene.Height, bright.Width, bright.Height)
	}
	if scene.Channels < 3 || bright.Channels < 3 {
		return fmt.Errorf("%w: inputs need at least 3 channels", ErrTargetMismatch)
	}
	if scene.Width < 1 || scene.Height < 1 {
		return fmt.Errorf("%w: inputs are empty", ErrTargetMismatch)
	}
	return nil
}
