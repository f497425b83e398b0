package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/connection"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/auth"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type AdminHandler struct {
	profileRepo profile.Repository
	connRepo    connection.Repository
	jwtSvc      *auth.JWTService
	adminSecret string
	logger      logger.Logger
}

func NewAdminHandler(
	profileRepo profile.Repository,
	connRepo connection.Repository,
	jwtSvc *auth.JWTService,
	adminSecret string,
	log logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		profileRepo: profileRepo,
		connRepo:    connRepo,
		jwtSvc:      jwtSvc,
		adminSecret: adminSecret,
		logger:      log,
	}
}

type tokenRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// Token exchanges the shared admin secret for a short-lived JWT.
func (h *AdminHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for token request", err))
		return
	}

	if req.Secret != h.adminSecret {
		c.Error(apperror.NewUnauthorized("admin secret mismatch", nil))
		return
	}

	token, err := h.jwtSvc.GenerateAdminToken()
	if err != nil {
		c.Error(apperror.NewInternal("failed to issue admin token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type statsResponse struct {
	Profiles            int64 `json:"profiles"`
	PremiumProfiles     int64 `json:"premium_profiles"`
	AcceptedConnections int64 `json:"accepted_connections"`
}

func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	profiles, err := h.profileRepo.CountAll(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	premium, err := h.profileRepo.CountPremium(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	accepted, err := h.connRepo.CountAccepted(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		Profiles:            profiles,
		PremiumProfiles:     premium,
		AcceptedConnections: accepted,
	})
}
