// Package framing places a source photo inside a fixed target canvas via
// user-controlled scale and pan, and rasterizes the result pixel-exact.
package framing

import "fmt"

// Target names one entry of the fixed dimension catalogue.
type Target string

const (
	TargetLandscape Target = "landscape"
	TargetSquare    Target = "square"
	TargetPortrait  Target = "portrait"
	TargetLogo      Target = "logo"
)

// Spec is a target geometry. The catalogue is a process-wide constant table.
type Spec struct {
	Target Target `json:"target"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

var specs = []Spec{
	{Target: TargetLandscape, Width: 1200, Height: 628, Label: "Landscape (1200×628px)"},
	{Target: TargetSquare, Width: 1200, Height: 1200, Label: "Square (1200×1200px)"},
	{Target: TargetPortrait, Width: 960, Height: 1200, Label: "Portrait (960×1200px)"},
	{Target: TargetLogo, Width: 1200, Height: 1200, Label: "Logo Square (1200×1200px)"},
}

// Specs returns the catalogue in stable order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// SpecFor resolves a catalogue entry by target name.
func SpecFor(t Target) (Spec, error) {
	for _, s := range specs {
		if s.Target == t {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("unknown framing target %q", t)
}
