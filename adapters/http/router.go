package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colleaguesnet/colleagues-bot/internal/config"
	"github.com/colleaguesnet/colleagues-bot/pkg/auth"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

func NewRouter(cfg config.Config, adminHandler *AdminHandler, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

	admin := router.Group("/admin")
	{
		admin.POST("/auth/token", adminHandler.Token)

		private := admin.Group("/")
		private.Use(AuthMiddleware(jwtSvc))
		{
			private.GET("/stats", adminHandler.Stats)
		}
	}

	return router
}
