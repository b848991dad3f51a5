package http

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r.Group("/framing"))
	return r
}

func TestSpecs(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/framing/specs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Specs []struct {
			Target string `json:"target"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
			Label  string `json:"label"`
		} `json:"specs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Specs, 4)
	assert.Equal(t, "landscape", body.Specs[0].Target)
	assert.Equal(t, 1200, body.Specs[0].Width)
	assert.Equal(t, 628, body.Specs[0].Height)
	assert.NotEmpty(t, body.Specs[0].Label)
}

func TestPlacement(t *testing.T) {
	r := newTestRouter()

	payload := `{"source_width":2400,"source_height":628,"target":"landscape"}`
	req := httptest.NewRequest(http.MethodPost, "/framing/placement", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		State struct {
			Scale   float64 `json:"scale"`
			OffsetX float64 `json:"offset_x"`
			OffsetY float64 `json:"offset_y"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 1.0, body.State.Scale, 1e-9)
	assert.InDelta(t, -600, body.State.OffsetX, 1e-9)
	assert.InDelta(t, 0, body.State.OffsetY, 1e-9)
}

func TestPlacement_BadInput(t *testing.T) {
	r := newTestRouter()

	for _, payload := range []string{
		`{"source_width":100,"source_height":100,"target":"banner"}`,
		`{"source_width":0,"source_height":100,"target":"square"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/framing/placement", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %q", payload)
	}
}

func renderForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if withImage {
		fw, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
		for i := range src.Pix {
			src.Pix[i] = 0xff
		}
		require.NoError(t, png.Encode(fw, src))
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRender(t *testing.T) {
	r := newTestRouter()

	body, contentType := renderForm(t, map[string]string{"target": "landscape"}, true)
	req := httptest.NewRequest(http.MethodPost, "/framing/render", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 628, cfg.Height)
}

func TestRender_PanShowsCanvasFill(t *testing.T) {
	r := newTestRouter()

	// pan the photo fully off the canvas so only the neutral fill remains
	body, contentType := renderForm(t, map[string]string{
		"target": "square", "pan_x": "5000", "pan_y": "5000",
	}, true)
	req := httptest.NewRequest(http.MethodPost, "/framing/render", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	r8, g8, b8, _ := img.At(0, 0).RGBA()
	assert.Equal(t, color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0}, color.RGBA{R: uint8(r8 >> 8), G: uint8(g8 >> 8), B: uint8(b8 >> 8)})
}

func TestRender_Validation(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name      string
		fields    map[string]string
		withImage bool
	}{
		{"unknown target", map[string]string{"target": "banner"}, true},
		{"missing image", map[string]string{"target": "square"}, false},
		{"scale out of range", map[string]string{"target": "square", "scale": "9.5"}, true},
		{"scale not numeric", map[string]string{"target": "square", "scale": "big"}, true},
		{"pan not numeric", map[string]string{"target": "square", "pan_x": "left"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := renderForm(t, tc.fields, tc.withImage)
			req := httptest.NewRequest(http.MethodPost, "/framing/render", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
