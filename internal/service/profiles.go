package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lacajita-admin/internal/repository"
	"lacajita-admin/internal/repository/model"
)

// profileHandler serves the legacy hybrid-signup profile cache: a local
// record keyed by a generated id, looked up by the email's user part.
type profileHandler struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
}

func newProfileHandler(logger *zap.SugaredLogger, repo repository.Repository) *profileHandler {
	return &profileHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *profileHandler) register(r *gin.RouterGroup) {
	g := r.Group("/profiles")
	g.GET("", h.listProfiles)
	g.POST("", h.saveProfile)
	g.GET("/me", h.getOwnProfile)
	g.GET("/:profileId", h.getProfile)
	g.DELETE("/:profileId", h.deleteProfile)
}

func (h *profileHandler) listProfiles(c *gin.Context) {
	profiles, err := h.repo.GetAllProfiles(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// saveProfile creates or updates the caller's local profile. The record is
// keyed by the email prefix, so a second save replaces the first.
func (h *profileHandler) saveProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FirstName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "firstName is required"})
		return
	}

	prefix, ok := emailPrefix(callerEmail(c))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caller has no email"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	profile, err := h.repo.GetProfileByEmailPrefix(ctx, prefix)
	switch {
	case errors.Is(err, repository.NotFoundError):
		profile = &model.LocalProfile{
			ID:          uuid.New().String(),
			EmailPrefix: prefix,
			CreatedAt:   now,
		}
	case err != nil:
		respondRepoError(c, h.logger, err)
		return
	}
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone
	profile.UpdatedAt = now

	if err := h.repo.SaveProfile(ctx, profile); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *profileHandler) getOwnProfile(c *gin.Context) {
	prefix, ok := emailPrefix(callerEmail(c))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caller has no email"})
		return
	}

	profile, err := h.repo.GetProfileByEmailPrefix(c.Request.Context(), prefix)
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *profileHandler) getProfile(c *gin.Context) {
	profile, err := h.repo.GetProfile(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *profileHandler) deleteProfile(c *gin.Context) {
	if err := h.repo.DeleteProfile(c.Request.Context(), c.Param("profileId")); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func emailPrefix(email string) (string, bool) {
	prefix, _, ok := strings.Cut(email, "@")
	if !ok || prefix == "" {
		return "", false
	}
	return strings.ToLower(prefix), true
}
