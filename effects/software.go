package effects

import (
	"bloom-gl/libio"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type swBloom struct {
	cfg Config
}

// NewSwBloom returns a CPU implementation that samples like the GL stages
// (bilinear, clamp to edge, texel centers).
func NewSwBloom(cfg Config) (Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &swBloom{cfg: cfg}, nil
}

func (sw *swBloom) Process(scene, bright *libio.FloatImage, state BloomSnapshot) (*libio.FloatImage, error) {
	if err := checkInputs(scene, bright); err != nil {
		return nil, err
	}
	bw, bh := sw.cfg.BlurSize(scene.Width, scene.Height)
	blurred := SoftwareBlur(bright, sw.cfg.Iterations, bw, bh)
	return SoftwareComposite(scene, blurred, state, sw.cfg.Gamma), nil
}

func (*swBloom) Release() {}

// SoftwareBlur runs the blur schedule over the first three channels of bright
// using two width x height buffers and returns the one written last.
func SoftwareBlur(bright *libio.FloatImage, iterations, width, height int) *libio.FloatImage {
	buffers := [2]*libio.FloatImage{
		libio.NewFloatImageSize(3, width, height),
		libio.NewFloatImageSize(3, width, height),
	}
	if iterations < 1 {
		return buffers[PingPongB]
	}

	for _, step := range BlurSchedule(iterations) {
		source := bright
		switch step.Source {
		case SourcePingPongA:
			source = buffers[PingPongA]
		case SourcePingPongB:
			source = buffers[PingPongB]
		}
		blurPass(source, buffers[step.Target], step.Horizontal)
	}

	return buffers[Terminal(iterations, PingPongB)]
}

func blurPass(src, dst *libio.FloatImage, horizontal bool) {
	sx := float32(src.Width) / float32(dst.Width)
	sy := float32(src.Height) / float32(dst.Height)
	var dx, dy float32 = 1, 0
	if !horizontal {
		dx, dy = 0, 1
	}

	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			u := (float32(x)+0.5)*sx - 0.5
			v := (float32(y)+0.5)*sy - 0.5

			result := sampleBilinear(src, u, v).Mul(BlurWeights[0])
			for i := 1; i < len(BlurWeights); i++ {
				o := float32(i)
				result = result.Add(sampleBilinear(src, u+dx*o, v+dy*o).Mul(BlurWeights[i]))
				result = result.Add(sampleBilinear(src, u-dx*o, v-dy*o).Mul(BlurWeights[i]))
			}
			copy(dst.At(x, y), result[:])
		}
	}
}

// SoftwareComposite tone maps scene, adding blurred when bloom is enabled.
// blurred may be smaller than scene; it is sampled bilinearly.
func SoftwareComposite(scene, blurred *libio.FloatImage, state BloomSnapshot, gamma float32) *libio.FloatImage {
	out := libio.NewFloatImageSize(3, scene.Width, scene.Height)
	sx := float32(blurred.Width) / float32(scene.Width)
	sy := float32(blurred.Height) / float32(scene.Height)

	for y := 0; y < scene.Height; y++ {
		for x := 0; x < scene.Width; x++ {
			px := scene.At(x, y)
			hdr := mgl32.Vec3{px[0], px[1], px[2]}
			var glow mgl32.Vec3
			if state.Enabled {
				glow = sampleBilinear(blurred, (float32(x)+0.5)*sx-0.5, (float32(y)+0.5)*sy-0.5)
			}
			result := Composite(hdr, glow, state.Enabled, state.Exposure, gamma)
			copy(out.At(x, y), result[:])
		}
	}
	return out
}

// sampleBilinear reads the first three channels at texel space (u, v),
// where integer coordinates are texel centers.
func sampleBilinear(img *libio.FloatImage, u, v float32) mgl32.Vec3 {
	u0, uf := math32.Modf(u)
	v0, vf := math32.Modf(v)
	if uf < 0 {
		u0, uf = u0-1, uf+1
	}
	if vf < 0 {
		v0, vf = v0-1, vf+1
	}
	x0, y0 := int(u0), int(v0)

	fetch := func(x, y int) mgl32.Vec3 {
		px := img.At(x, y)
		return mgl32.Vec3{px[0], px[1], px[2]}
	}

	if uf == 0 && vf == 0 {
		return fetch(x0, y0)
	}

	top := fetch(x0, y0).Mul(1 - uf).Add(fetch(x0+1, y0).Mul(uf))
	bottom := fetch(x0, y0+1).Mul(1 - uf).Add(fetch(x0+1, y0+1).Mul(uf))
	return top.Mul(1 - vf).Add(bottom.Mul(vf))
}
