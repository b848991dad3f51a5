package bootstrap

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/markleedr/campaign-planner-app/internal/api/http"
	"github.com/markleedr/campaign-planner-app/internal/api/http/middleware"
	"github.com/markleedr/campaign-planner-app/internal/campaigns"
	"github.com/markleedr/campaign-planner-app/internal/clients"
	framinghttp "github.com/markleedr/campaign-planner-app/internal/framing/http"
	proofhttp "github.com/markleedr/campaign-planner-app/internal/proofs/http"
	"github.com/markleedr/campaign-planner-app/internal/proofs/repository"
	"github.com/markleedr/campaign-planner-app/internal/share"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins string
	DB             *pgxpool.Pool
	Redis          *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	corsCfg := cors.DefaultConfig()
	if dep.AllowedOrigins == "" || dep.AllowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(dep.AllowedOrigins, ",")
	}
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	clientRepo := clients.NewRepo(dep.DB)
	campaignRepo := campaigns.NewRepo(dep.DB)
	proofRepo := repository.NewProofRepo(dep.DB)
	versionStore := repository.NewVersionStore(dep.DB)

	api := r.Group("/api/v1")

	clients.Register(api.Group("/clients"), clientRepo)

	campaignsGroup := api.Group("/campaigns")
	campaigns.Register(campaignsGroup, campaignRepo)
	proofhttp.RegisterCampaignSubroutes(campaignsGroup, proofRepo)

	proofhttp.Register(api.Group("/proofs"), proofRepo, versionStore)
	framinghttp.Register(api.Group("/framing"))

	// unauthenticated review surface: cached and rate limited
	shareGroup := r.Group("/share")
	shareGroup.Use(middleware.RateLimit(5, 10))
	share.Register(shareGroup, campaignRepo, proofRepo, versionStore, share.NewCache(dep.Redis))

	return r
}
