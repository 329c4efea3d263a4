package assets

import (
	"image"

	"bloom-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// UploadTexture creates a mipmapped 2D texture. Rows are flipped so uv (0,0)
// is the bottom left corner of the image.
func UploadTexture(img *image.RGBA, srgb bool) libgl.UnboundTexture {
	format := uint32(gl.RGBA8)
	if srgb {
		format = gl.SRGB8_ALPHA8
	}
	flipped := FlipV(img)
	w, h := flipped.Rect.Dx(), flipped.Rect.Dy()

	tex := libgl.NewTexture(gl.TEXTURE_2D)
	tex.Allocate(0, format, w, h, 0)
	tex.Load(0, w, h, 0, gl.RGBA, flipped.Pix)
	tex.GenerateMipmap()
	tex.FilterMode(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	tex.WrapMode(gl.REPEAT, gl.REPEAT, 0)
	return tex
}

// UploadCubemap creates a cubemap from faces in +X, -X, +Y, -Y, +Z, -Z order.
// Cubemap faces keep the image row order.
func UploadCubemap(faces [6]*image.RGBA, srgb bool) libgl.UnboundTexture {
	format := uint32(gl.RGBA8)
	if srgb {
		format = gl.SRGB8_ALPHA8
	}
	size := faces[0].Rect.Dx()

	tex := libgl.NewTexture(gl.TEXTURE_CUBE_MAP)
	tex.Allocate(1, format, size, size, 0)
	for i, face := range faces {
		tex.LoadLayer(0, size, size, i, gl.RGBA, face.Pix)
	}
	tex.FilterMode(gl.LINEAR, gl.LINEAR)
	tex.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	return tex
}

func (l *Loader) LoadTexture(name string, srgb bool) (libgl.UnboundTexture, error) {
	img, err := l.LoadImage(name)
	if err != nil {
		return nil, err
	}
	tex := UploadTexture(img, srgb)
	tex.SetDebugLabel(name)
	return tex, nil
}

func (l *Loader) LoadCubemap(names [6]string) (libgl.UnboundTexture, error) {
	faces, err := l.LoadFaces(names)
	if err != nil {
		return nil, err
	}
	tex := UploadCubemap(faces, true)
	tex.SetDebugLabel("Skybox")
	return tex, nil
}
