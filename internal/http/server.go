// Package http assembles the Gin router: middleware stack, routes, and
// the Prometheus scrape endpoint. Grounded in the teacher's
// cmd/zmux-server/main.go router construction (gin.New + Recovery +
// conditional dev CORS + Zap request logger).
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skyaktech/tlq/internal/config"
	"github.com/skyaktech/tlq/internal/http/handlers"
	"github.com/skyaktech/tlq/internal/http/middleware"
	"github.com/skyaktech/tlq/internal/service"
	"go.uber.org/zap"
)

// NewRouter builds the complete Gin engine for the queue API.
func NewRouter(log *zap.Logger, cfg *config.Config, msgSvc *service.MessageService, statsSvc *service.StatsService) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(gin.Recovery()) // outermost: never let a panic take the process down

	r.Use(secure.New(secure.Config{
		SSLRedirect:           false, // TLQ is typically fronted by a reverse proxy, not terminating TLS itself
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'",
	}))

	if cfg.Env == "dev" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(log))

	msgHandler := handlers.NewMessages(log, msgSvc)
	opsHandler := handlers.NewOps(statsSvc)

	r.GET("/hello", msgHandler.Hello)
	r.POST("/add", msgHandler.Add)
	r.POST("/get", msgHandler.Get)
	r.POST("/delete", msgHandler.Delete)
	r.POST("/purge", msgHandler.Purge)
	r.POST("/retry", msgHandler.Retry)

	r.GET("/healthz", opsHandler.Healthz)
	r.GET("/stats", opsHandler.Stats)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
