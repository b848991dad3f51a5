package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/markleedr/campaign-planner-app/internal/framing"
)

type Handler struct{}

func Register(rg *gin.RouterGroup) {
	h := &Handler{}
	rg.GET("/specs", h.specs)
	rg.POST("/placement", h.placement)
	rg.POST("/render", h.render)
}

func (h *Handler) specs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "specs": framing.Specs()})
}

type placementReq struct {
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	Target       string `json:"target"`
}

func (h *Handler) placement(c *gin.Context) {
	var req placementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	spec, err := framing.SpecFor(framing.Target(req.Target))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	state, err := framing.InitialPlacement(req.SourceWidth, req.SourceHeight, spec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "spec": spec, "state": state})
}

// render accepts a multipart upload and streams back a PNG of exactly the
// target dimensions. Form fields: image (file), target, and optional scale,
// pan_x, pan_y relative to the initial cover-fit placement. ?guides=1 adds
// the editing overlay; exports are requested without it.
func (h *Handler) render(c *gin.Context) {
	spec, err := framing.SpecFor(framing.Target(c.PostForm("target")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "image file required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	defer file.Close()

	img, err := framing.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	bounds := img.Bounds()
	state, err := framing.InitialPlacement(bounds.Dx(), bounds.Dy(), spec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if raw := c.PostForm("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid scale"})
			return
		}
		state, err = state.Zoom(scale)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	panX, err := formFloat(c, "pan_x")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid pan_x"})
		return
	}
	panY, err := formFloat(c, "pan_y")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid pan_y"})
		return
	}
	state = state.Pan(panX, panY)

	var opts []framing.RenderOption
	if c.Query("guides") == "1" {
		opts = append(opts, framing.WithGuides())
	}

	out := framing.Render(img, state, spec, opts...)
	buf, err := framing.Export(out)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf)
}

func formFloat(c *gin.Context, key string) (float64, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
