package framing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPlacement_CoverFit(t *testing.T) {
	landscape, err := SpecFor(TargetLandscape)
	require.NoError(t, err)
	portrait, err := SpecFor(TargetPortrait)
	require.NoError(t, err)
	square, err := SpecFor(TargetSquare)
	require.NoError(t, err)

	cases := []struct {
		name string
		w, h int
		spec Spec
	}{
		{"wide source on landscape", 4000, 1000, landscape},
		{"tall source on landscape", 1000, 4000, landscape},
		{"small source on square", 300, 200, square},
		{"exact fit", 1200, 628, landscape},
		{"huge source on portrait", 8000, 6000, portrait},
		{"single pixel", 1, 1, square},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := InitialPlacement(tc.w, tc.h, tc.spec)
			require.NoError(t, err)

			scaleX := float64(tc.spec.Width) / float64(tc.w)
			scaleY := float64(tc.spec.Height) / float64(tc.h)

			// cover-fit: never below either axis ratio
			assert.GreaterOrEqual(t, st.Scale, scaleX-1e-9)
			assert.GreaterOrEqual(t, st.Scale, scaleY-1e-9)

			// placed image fully covers the canvas at zero pan
			assert.LessOrEqual(t, st.OffsetX, 1e-9)
			assert.LessOrEqual(t, st.OffsetY, 1e-9)
			assert.GreaterOrEqual(t, st.OffsetX+float64(tc.w)*st.Scale, float64(tc.spec.Width)-1e-9)
			assert.GreaterOrEqual(t, st.OffsetY+float64(tc.h)*st.Scale, float64(tc.spec.Height)-1e-9)
		})
	}
}

func TestInitialPlacement_Centered(t *testing.T) {
	spec, err := SpecFor(TargetLandscape)
	require.NoError(t, err)

	// 2400x628-shaped source: height drives the scale, width overflows evenly
	st, err := InitialPlacement(2400, 628, spec)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, st.Scale, 1e-9)
	assert.InDelta(t, (1200.0-2400.0)/2, st.OffsetX, 1e-9)
	assert.InDelta(t, 0, st.OffsetY, 1e-9)
}

func TestInitialPlacement_Deterministic(t *testing.T) {
	spec, err := SpecFor(TargetSquare)
	require.NoError(t, err)

	a, err := InitialPlacement(1037, 733, spec)
	require.NoError(t, err)
	b, err := InitialPlacement(1037, 733, spec)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInitialPlacement_RejectsBadDimensions(t *testing.T) {
	spec, err := SpecFor(TargetSquare)
	require.NoError(t, err)

	_, err = InitialPlacement(0, 100, spec)
	assert.Error(t, err)
	_, err = InitialPlacement(100, -5, spec)
	assert.Error(t, err)
}

func TestPan_Unclamped(t *testing.T) {
	spec, err := SpecFor(TargetLandscape)
	require.NoError(t, err)
	st, err := InitialPlacement(2000, 2000, spec)
	require.NoError(t, err)

	moved := st.Pan(5000, -5000)
	assert.InDelta(t, st.OffsetX+5000, moved.OffsetX, 1e-9)
	assert.InDelta(t, st.OffsetY-5000, moved.OffsetY, 1e-9)

	// original state untouched
	assert.NotEqual(t, st.OffsetX, moved.OffsetX)
}

func TestZoom(t *testing.T) {
	spec, err := SpecFor(TargetSquare)
	require.NoError(t, err)
	st, err := InitialPlacement(2400, 2400, spec)
	require.NoError(t, err)

	t.Run("accepts values inside the range", func(t *testing.T) {
		zoomed, err := st.Zoom(1.5)
		require.NoError(t, err)
		assert.Equal(t, 1.5, zoomed.Scale)
	})

	t.Run("rejects zero and negative", func(t *testing.T) {
		prior := st.Scale
		_, err := st.Zoom(0)
		assert.Error(t, err)
		_, err = st.Zoom(-0.5)
		assert.Error(t, err)
		assert.Equal(t, prior, st.Scale, "prior state must stay intact")
	})

	t.Run("rejects out-of-range", func(t *testing.T) {
		_, err := st.Zoom(0.05)
		assert.Error(t, err)
		_, err = st.Zoom(3.5)
		assert.Error(t, err)
	})

	t.Run("boundary values are valid", func(t *testing.T) {
		_, err := st.Zoom(MinScale)
		assert.NoError(t, err)
		_, err = st.Zoom(MaxScale)
		assert.NoError(t, err)
	})
}

func TestSpecCatalogue(t *testing.T) {
	all := Specs()
	require.Len(t, all, 4)

	expect := map[Target][2]int{
		TargetLandscape: {1200, 628},
		TargetSquare:    {1200, 1200},
		TargetPortrait:  {960, 1200},
		TargetLogo:      {1200, 1200},
	}
	for target, dims := range expect {
		spec, err := SpecFor(target)
		require.NoError(t, err)
		assert.Equal(t, dims[0], spec.Width)
		assert.Equal(t, dims[1], spec.Height)
	}

	_, err := SpecFor(Target("banner"))
	assert.Error(t, err)
}
