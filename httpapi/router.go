package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"unitconv"
	"unitconv/logging"
)

type RouterConfig struct {
	Catalog      *unitconv.Catalog
	Log          *logging.Logger
	AllowOrigins []string
	Decimals     int
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type"},
		}))
	}

	h := NewConvertHandler(cfg.Log, cfg.Catalog, cfg.Decimals)

	router.GET("/healthcheck", HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/catalog", h.Catalog)
		api.POST("/convert", h.Convert)
	}
	return router
}
