package share

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markleedr/campaign-planner-app/internal/campaigns"
	"github.com/markleedr/campaign-planner-app/internal/proofs/domain"
)

type fakeShareStore struct {
	campaign *campaigns.Campaign
	proofs   []domain.AdProof
	latest   map[string]*domain.AdProofVersion
}

func (s *fakeShareStore) GetByShareToken(_ context.Context, token string) (*campaigns.Campaign, error) {
	if s.campaign != nil && s.campaign.ShareToken == token {
		return s.campaign, nil
	}
	return nil, campaigns.ErrNotFound
}

func (s *fakeShareStore) ListByCampaign(_ context.Context, campaignID string) ([]domain.AdProof, error) {
	var out []domain.AdProof
	for _, p := range s.proofs {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeShareStore) LoadLatest(_ context.Context, proofID string) (*domain.AdProofVersion, error) {
	return s.latest[proofID], nil
}

type fakeProofByToken struct{ *fakeShareStore }

func (s fakeProofByToken) GetByShareToken(_ context.Context, token string) (*domain.AdProof, error) {
	for _, p := range s.proofs {
		if p.ShareToken == token {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newShareRouter(store *fakeShareStore, cache *Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r.Group("/share"), store, fakeProofByToken{store}, store, cache)
	return r
}

func seededStore() *fakeShareStore {
	var data domain.AdData
	data.Set(domain.FieldHeadline, "Summer Sale")

	return &fakeShareStore{
		campaign: &campaigns.Campaign{
			ID:         "camp-1",
			ClientName: "Acme",
			Name:       "Summer Push",
			ShareToken: "camp-tok",
		},
		proofs: []domain.AdProof{
			{
				ID:             "proof-1",
				CampaignID:     "camp-1",
				Platform:       domain.PlatformFacebook,
				Format:         domain.FormatSingleImage,
				Status:         domain.StatusInReview,
				CurrentVersion: 1,
				ShareToken:     "proof-tok",
			},
		},
		latest: map[string]*domain.AdProofVersion{
			"proof-1": {AdProofID: "proof-1", VersionNumber: 1, Data: data},
		},
	}
}

func getShare(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestSharedCampaign(t *testing.T) {
	r := newShareRouter(seededStore(), NewCache(nil))

	w, body := getShare(t, r, "/share/campaigns/camp-tok")
	require.Equal(t, http.StatusOK, w.Code)

	campaign := body["campaign"].(map[string]any)
	assert.Equal(t, "Summer Push", campaign["name"])
	assert.Equal(t, "Acme", campaign["client_name"])

	proofs := body["proofs"].([]any)
	require.Len(t, proofs, 1)
	row := proofs[0].(map[string]any)
	assert.Equal(t, "in-review", row["status"])
	assert.Equal(t, "proof-tok", row["share_token"])

	// internal identifiers never leave the projection
	_, hasID := row["id"]
	assert.False(t, hasID)
	_, hasCampaignID := row["campaign_id"]
	assert.False(t, hasCampaignID)
}

func TestSharedCampaign_UnknownToken(t *testing.T) {
	r := newShareRouter(seededStore(), NewCache(nil))
	w, _ := getShare(t, r, "/share/campaigns/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSharedProof(t *testing.T) {
	r := newShareRouter(seededStore(), NewCache(nil))

	w, body := getShare(t, r, "/share/proofs/proof-tok")
	require.Equal(t, http.StatusOK, w.Code)

	proof := body["proof"].(map[string]any)
	assert.Equal(t, "facebook", proof["platform"])
	assert.Equal(t, float64(1), proof["current_version"])

	version := body["version"].(map[string]any)
	assert.Equal(t, "Summer Sale", version["ad_data"].(map[string]any)["headline"])
	assert.Equal(t, float64(1), version["version_number"])

	// the snapshot projection must not leak the internal proof id
	_, hasProofID := version["ad_proof_id"]
	assert.False(t, hasProofID)

	preview := body["preview"].(map[string]any)
	assert.Equal(t, "facebook-single-image", preview["variant"])
	assert.Equal(t, "Summer Sale", preview["headline"])
}

func TestSharedProof_UnknownToken(t *testing.T) {
	r := newShareRouter(seededStore(), NewCache(nil))
	w, _ := getShare(t, r, "/share/proofs/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSharedCampaign_ServedFromCache(t *testing.T) {
	store := seededStore()
	cache, _ := newTestCache(t)
	r := newShareRouter(store, cache)

	w, _ := getShare(t, r, "/share/campaigns/camp-tok")
	require.Equal(t, http.StatusOK, w.Code)

	// a rename inside the TTL is not visible: the projection is cached
	store.campaign.Name = "Renamed"
	_, body := getShare(t, r, "/share/campaigns/camp-tok")
	assert.Equal(t, "Summer Push", body["campaign"].(map[string]any)["name"])
}
