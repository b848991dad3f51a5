// Package share serves the unauthenticated, token-keyed review surface:
// read-only projections of a campaign or a single ad proof for clients
// following an unlisted link.
package share

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/markleedr/campaign-planner-app/internal/campaigns"
	"github.com/markleedr/campaign-planner-app/internal/previews"
	"github.com/markleedr/campaign-planner-app/internal/proofs/domain"
)

type CampaignStore interface {
	GetByShareToken(ctx context.Context, token string) (*campaigns.Campaign, error)
}

type ProofStore interface {
	GetByShareToken(ctx context.Context, token string) (*domain.AdProof, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.AdProof, error)
}

type VersionStore interface {
	LoadLatest(ctx context.Context, proofID string) (*domain.AdProofVersion, error)
}

type Handler struct {
	campaigns CampaignStore
	proofs    ProofStore
	versions  VersionStore
	cache     *Cache
}

func Register(rg *gin.RouterGroup, campaignStore CampaignStore, proofStore ProofStore, versionStore VersionStore, cache *Cache) {
	h := &Handler{campaigns: campaignStore, proofs: proofStore, versions: versionStore, cache: cache}
	rg.GET("/campaigns/:token", h.campaign)
	rg.GET("/proofs/:token", h.proof)
}

// proofSummary is the per-proof row on the shared campaign page. Internal
// identifiers stay out of the projection; the proof's own share token is the
// only handle a reviewer gets.
type proofSummary struct {
	Platform       domain.Platform `json:"platform"`
	Format         domain.Format   `json:"ad_format"`
	Status         domain.Status   `json:"status"`
	CurrentVersion int             `json:"current_version"`
	ShareToken     string          `json:"share_token"`
}

// versionView is the snapshot as shown to reviewers, without the internal
// proof id the full AdProofVersion carries.
type versionView struct {
	VersionNumber int           `json:"version_number"`
	Data          domain.AdData `json:"ad_data"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (h *Handler) campaign(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.Param("token")

	if body := h.cache.GetCampaign(ctx, token); body != nil {
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	campaign, err := h.campaigns.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, campaigns.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	items, err := h.proofs.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	summaries := make([]proofSummary, 0, len(items))
	for _, p := range items {
		summaries = append(summaries, proofSummary{
			Platform:       p.Platform,
			Format:         p.Format,
			Status:         p.Status,
			CurrentVersion: p.CurrentVersion,
			ShareToken:     p.ShareToken,
		})
	}

	body, err := json.Marshal(gin.H{
		"ok": true,
		"campaign": gin.H{
			"name":        campaign.Name,
			"client_name": campaign.ClientName,
		},
		"proofs": summaries,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetCampaign(ctx, token, body)
	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) proof(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.Param("token")

	if body := h.cache.GetProof(ctx, token); body != nil {
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	p, err := h.proofs.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "ad proof not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	latest, err := h.versions.LoadLatest(ctx, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	var data domain.AdData
	var version *versionView
	if latest != nil {
		data = latest.Data
		version = &versionView{
			VersionNumber: latest.VersionNumber,
			Data:          latest.Data,
			CreatedAt:     latest.CreatedAt,
		}
	}

	body, err := json.Marshal(gin.H{
		"ok": true,
		"proof": proofSummary{
			Platform:       p.Platform,
			Format:         p.Format,
			Status:         p.Status,
			CurrentVersion: p.CurrentVersion,
			ShareToken:     p.ShareToken,
		},
		"version": version,
		"preview": previews.Render(previews.SelectVariant(p.Platform, p.Format), data),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetProof(ctx, token, body)
	c.Data(http.StatusOK, "application/json", body)
}
