package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/repository"
)

// respondIdentityError maps identity provider failures onto the panel's
// status codes: missing records are 404, master account guards are 403 and
// everything else surfaces as a bad gateway.
func respondIdentityError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, idp.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, idp.ErrMasterAccount):
		c.JSON(http.StatusForbidden, gin.H{"error": "the master account cannot be modified"})
	default:
		logger.Errorw("identity provider request failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider error"})
	}
}

func respondRepoError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	if errors.Is(err, repository.NotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logger.Errorw("repository request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
