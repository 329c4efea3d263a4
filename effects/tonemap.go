package effects

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BlurWeights is one half of the symmetric 9 tap gaussian, center first.
var BlurWeights = [5]float32{0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216}

// ToneMap applies exposure tone mapping followed by gamma correction.
func ToneMap(hdr mgl32.Vec3, exposure, gamma float32) mgl32.Vec3 {
	var out mgl32.Vec3
	for i, v := range hdr {
		mapped := 1 - math32.Exp(-v*exposure)
		out[i] = math32.Pow(mapped, 1/gamma)
	}
	return out
}

// Composite is the CPU version of the composite shader. With bloom disabled
// the blurred value is ignored entirely.
func Composite(scene, blurred mgl32.Vec3, bloom bool, exposure, gamma float32) mgl32.Vec3 {
	combined := scene
	if bloom {
		combined = scene.Add(blurred)
	}
	return ToneMap(combined, exposure, gamma)
}
