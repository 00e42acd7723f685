package service

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lacajita-admin/internal/dashboard"
)

type dashboardHandler struct {
	logger *zap.SugaredLogger
	dash   *dashboard.Service
}

func newDashboardHandler(logger *zap.SugaredLogger, dash *dashboard.Service) *dashboardHandler {
	return &dashboardHandler{
		logger: logger,
		dash:   dash,
	}
}

func (h *dashboardHandler) register(r *gin.RouterGroup) {
	g := r.Group("/dashboard")
	g.GET("/customers-summary", h.customersSummary)
	g.GET("/login-stats", h.loginStats)
	g.GET("/system-summary", h.systemSummary)
	g.GET("/customers-demographic", h.demographics)
	g.GET("/video-consumption", h.videoConsumption)
}

func (h *dashboardHandler) customersSummary(c *gin.Context) {
	summary, err := h.dash.CustomersSummary(c.Request.Context())
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *dashboardHandler) loginStats(c *gin.Context) {
	stats, err := h.dash.LoginStats(c.Request.Context())
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *dashboardHandler) systemSummary(c *gin.Context) {
	summary, err := h.dash.SystemSummary(c.Request.Context())
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *dashboardHandler) demographics(c *gin.Context) {
	demo, err := h.dash.Demographics(c.Request.Context())
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, demo)
}

func (h *dashboardHandler) videoConsumption(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := h.dash.VideoConsumption(c.Request.Context(), days)
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
