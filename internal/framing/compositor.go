package framing

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// canvasFill shows through wherever the placed image does not cover a pixel.
var canvasFill = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

// guideColor matches the editor's accent (#3b82f6).
var guideColor = color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}

// RenderOption configures a render pass.
type RenderOption func(*renderer)

type renderer struct {
	guides bool
}

// WithGuides draws the editing overlay: a 2px border plus the target
// dimension label. Interactive previews only — exports never carry it.
func WithGuides() RenderOption {
	return func(r *renderer) { r.guides = true }
}

// Render rasterizes the placement onto a canvas of exactly
// spec.Width × spec.Height pixels, whatever the source size or pan/zoom.
func Render(src image.Image, st State, spec Spec, opts ...RenderOption) *image.NRGBA {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(canvasFill), image.Point{}, draw.Src)

	b := src.Bounds()
	placed := image.Rect(
		int(math.Round(st.OffsetX)),
		int(math.Round(st.OffsetY)),
		int(math.Round(st.OffsetX+float64(b.Dx())*st.Scale)),
		int(math.Round(st.OffsetY+float64(b.Dy())*st.Scale)),
	)
	xdraw.CatmullRom.Scale(dst, placed, src, b, xdraw.Over, nil)

	if r.guides {
		drawGuides(dst, spec)
	}
	return dst
}

func drawGuides(dst *image.NRGBA, spec Spec) {
	dc := gg.NewContextForImage(dst)
	dc.SetColor(guideColor)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, float64(spec.Width-2), float64(spec.Height-2))
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	dc.DrawString(fmt.Sprintf("%d×%dpx", spec.Width, spec.Height), 10, 25)

	draw.Draw(dst, dst.Bounds(), dc.Image(), image.Point{}, draw.Src)
}

// Export encodes the rendered canvas as lossless PNG. The artifact's
// declared dimensions equal the canvas dimensions by construction.
func Export(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads an uploaded source image, honoring EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
