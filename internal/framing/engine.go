package framing

import "fmt"

// Zoom limits, as fractions of the source's natural size.
const (
	MinScale = 0.1
	MaxScale = 3.0
)

// State is the transient placement of a source image on a target canvas:
// scale factor plus pan offset in canvas pixel space. It lives only for one
// editing session; only the rendered output is ever persisted.
type State struct {
	SourceWidth  int     `json:"source_width"`
	SourceHeight int     `json:"source_height"`
	Scale        float64 `json:"scale"`
	OffsetX      float64 `json:"offset_x"`
	OffsetY      float64 `json:"offset_y"`
}

// InitialPlacement cover-fits the source on the canvas: the larger of the two
// axis ratios is used so no letterbox gap remains, and the scaled image is
// centered. The result fully covers the canvas at zero pan.
func InitialPlacement(sourceWidth, sourceHeight int, spec Spec) (State, error) {
	if sourceWidth <= 0 || sourceHeight <= 0 {
		return State{}, fmt.Errorf("source dimensions must be positive, got %dx%d", sourceWidth, sourceHeight)
	}

	scaleX := float64(spec.Width) / float64(sourceWidth)
	scaleY := float64(spec.Height) / float64(sourceHeight)
	scale := scaleX
	if scaleY > scale {
		scale = scaleY
	}

	return State{
		SourceWidth:  sourceWidth,
		SourceHeight: sourceHeight,
		Scale:        scale,
		OffsetX:      (float64(spec.Width) - float64(sourceWidth)*scale) / 2,
		OffsetY:      (float64(spec.Height) - float64(sourceHeight)*scale) / 2,
	}, nil
}

// Pan translates the offset by a pixel delta. No clamping: panning past the
// cover-fit bounds leaves neutral margins in the render.
func (s State) Pan(dx, dy float64) State {
	s.OffsetX += dx
	s.OffsetY += dy
	return s
}

// Zoom replaces the scale factor. Values outside [MinScale, MaxScale] are
// rejected and the prior state stays valid.
func (s State) Zoom(scale float64) (State, error) {
	if scale < MinScale || scale > MaxScale {
		return s, fmt.Errorf("scale %.3f outside [%v, %v]", scale, MinScale, MaxScale)
	}
	s.Scale = scale
	return s, nil
}
