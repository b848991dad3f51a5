package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/markleedr/campaign-planner-app/internal/previews"
	"github.com/markleedr/campaign-planner-app/internal/proofs/domain"
)

// ProofStore is the persistence surface the handlers need; satisfied by
// repository.ProofRepo.
type ProofStore interface {
	Create(ctx context.Context, campaignID string, platform domain.Platform, format domain.Format) (*domain.AdProof, error)
	GetByID(ctx context.Context, id string) (*domain.AdProof, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.AdProof, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.AdProof, error)
}

// VersionStore is the snapshot history protocol; satisfied by
// repository.VersionStore.
type VersionStore interface {
	LoadLatest(ctx context.Context, proofID string) (*domain.AdProofVersion, error)
	Get(ctx context.Context, proofID string, versionNumber int) (*domain.AdProofVersion, error)
	List(ctx context.Context, proofID string) ([]domain.VersionMeta, error)
	Commit(ctx context.Context, proofID string, data domain.AdData, baseVersion *int) (int, error)
}

type Handler struct {
	proofs   ProofStore
	versions VersionStore
}

func Register(rg *gin.RouterGroup, proofs ProofStore, versions VersionStore) {
	h := &Handler{proofs: proofs, versions: versions}
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id/status", h.updateStatus)
	rg.GET("/:id/versions", h.listVersions)
	rg.GET("/:id/versions/latest", h.latestVersion)
	rg.GET("/:id/versions/:version", h.getVersion)
	rg.POST("/:id/versions", h.commitVersion)
	rg.GET("/:id/preview", h.preview)
}

// RegisterCampaignSubroutes adds the per-campaign proof listing.
func RegisterCampaignSubroutes(campaignsGroup *gin.RouterGroup, proofs ProofStore) {
	h := &Handler{proofs: proofs}
	campaignsGroup.GET("/:id/proofs", h.listByCampaign)
}

func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "ad proof not found"})
	case errors.Is(err, domain.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

type createReq struct {
	CampaignID string `json:"campaign_id"`
	Platform   string `json:"platform"`
	Format     string `json:"ad_format"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.CampaignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		writeError(c, err)
		return
	}
	format, err := domain.ParseFormat(platform, req.Format)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.proofs.Create(c.Request.Context(), req.CampaignID, platform, format)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "proof": p})
}

// fieldValue is one ordered edit-form entry. All canonical fields are always
// offered, empty when the snapshot lacks them.
type fieldValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func editableFields(data domain.AdData) []fieldValue {
	order := data.FieldOrder()
	out := make([]fieldValue, 0, len(order))
	for _, k := range order {
		out = append(out, fieldValue{Key: k, Value: data.Value(k)})
	}
	return out
}

func (h *Handler) get(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.proofs.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	latest, err := h.versions.LoadLatest(ctx, p.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	var data domain.AdData
	if latest != nil {
		data = latest.Data
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"proof":          p,
		"latest_version": latest,
		"fields":         editableFields(data),
	})
}

func (h *Handler) listByCampaign(c *gin.Context) {
	items, err := h.proofs.ListByCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "proofs": items})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.proofs.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "proof": p})
}

func (h *Handler) listVersions(c *gin.Context) {
	items, err := h.versions.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "versions": items})
}

func (h *Handler) latestVersion(c *gin.Context) {
	latest, err := h.versions.LoadLatest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "version": latest})
}

func (h *Handler) getVersion(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("version"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid version number"})
		return
	}

	v, err := h.versions.Get(c.Request.Context(), c.Param("id"), n)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "version": v})
}

type commitReq struct {
	AdData      domain.AdData `json:"ad_data"`
	BaseVersion *int          `json:"base_version"`
}

func (h *Handler) commitVersion(c *gin.Context) {
	var req commitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	n, err := h.versions.Commit(c.Request.Context(), c.Param("id"), req.AdData, req.BaseVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "version_number": n})
}

func (h *Handler) preview(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.proofs.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	latest, err := h.versions.LoadLatest(ctx, p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	var data domain.AdData
	if latest != nil {
		data = latest.Data
	}

	variant := previews.SelectVariant(p.Platform, p.Format)
	c.JSON(http.StatusOK, gin.H{"ok": true, "preview": previews.Render(variant, data)})
}
