package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lacajita-admin/internal/export"
	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/permission"
	"lacajita-admin/internal/repository"
)

type exportHandler struct {
	logger   *zap.SugaredLogger
	identity IdentityAPI
	resolver *permission.Resolver
	repo     repository.Repository
	exporter *export.Exporter
}

func newExportHandler(logger *zap.SugaredLogger, identity IdentityAPI, resolver *permission.Resolver,
	repo repository.Repository, exporter *export.Exporter) *exportHandler {

	return &exportHandler{
		logger:   logger,
		identity: identity,
		resolver: resolver,
		repo:     repo,
		exporter: exporter,
	}
}

func (h *exportHandler) register(r *gin.RouterGroup) {
	r.GET("/export", h.export)
}

func (h *exportHandler) export(c *gin.Context) {
	opts := export.Options{
		Type:           export.Type(c.DefaultQuery("type", string(export.TypeBoth))),
		Format:         export.Format(c.DefaultQuery("format", string(export.FormatJSON))),
		IncludeDetails: c.Query("details") == "1",
	}
	if err := opts.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var users []export.UserRecord
	if opts.Type == export.TypeUsers || opts.Type == export.TypeBoth {
		records, err := h.collectUsers(c)
		if err != nil {
			respondIdentityError(c, h.logger, err)
			return
		}
		users = records
	}

	var roles []idp.Role
	if opts.Type == export.TypeRoles || opts.Type == export.TypeBoth {
		all, err := h.identity.GetRoles(ctx)
		if err != nil {
			respondIdentityError(c, h.logger, err)
			return
		}
		roles = all
	}

	data, contentType, err := h.exporter.Render(opts, users, roles)
	if err != nil {
		h.logger.Errorw("failed to render export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(opts, time.Now())))
	c.Data(http.StatusOK, contentType, data)
}

const exportPageSize = 100

func (h *exportHandler) collectUsers(c *gin.Context) ([]export.UserRecord, error) {
	ctx := c.Request.Context()

	var all []idp.User
	for page := 0; ; page++ {
		users, err := h.identity.GetUsers(ctx, page, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, users...)
		if len(users) < exportPageSize {
			break
		}
	}

	// Local profile ids keyed by email prefix; missing profiles fall back to
	// the provider id.
	localIDs := map[string]string{}
	if profiles, err := h.repo.GetAllProfiles(ctx); err != nil {
		h.logger.Warnw("exporting without local profile ids", "error", err)
	} else {
		for _, profile := range profiles {
			localIDs[profile.EmailPrefix] = profile.ID
		}
	}

	records := make([]export.UserRecord, len(all))
	for i, user := range all {
		roles, err := h.identity.GetUserRoles(ctx, user.UserID)
		if err != nil {
			h.logger.Warnw("exporting user without roles", "userId", user.UserID, "error", err)
			roles = nil
		}
		names := make([]string, len(roles))
		for j, role := range roles {
			names[j] = role.Name
		}

		id := user.UserID
		if prefix, _, ok := strings.Cut(user.Email, "@"); ok {
			if localID, found := localIDs[prefix]; found {
				id = localID
			}
		}

		records[i] = export.UserRecord{
			ID:     id,
			User:   user,
			Roles:  names,
			Master: h.resolver.IsMasterAccount(user.Email),
		}
	}
	return records, nil
}
