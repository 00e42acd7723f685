package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/notifier"
	"lacajita-admin/internal/permission"
)

// IdentityAPI is the slice of the identity provider client the HTTP layer
// depends on.
type IdentityAPI interface {
	GetUsers(ctx context.Context, page int, perPage int) ([]idp.User, error)
	GetUser(ctx context.Context, userID string) (*idp.User, error)
	CreateUser(ctx context.Context, req idp.CreateUserRequest) (*idp.User, error)
	UpdateUser(ctx context.Context, userID string, req idp.UpdateUserRequest) (*idp.User, error)
	DeleteUser(ctx context.Context, userID string) error
	SetUserBlocked(ctx context.Context, userID string, blocked bool) (*idp.User, error)
	SendVerificationEmail(ctx context.Context, userID string) error

	GetUserRoles(ctx context.Context, userID string) ([]idp.Role, error)
	AssignRoles(ctx context.Context, userID string, roleIDs []string) error
	RemoveRoles(ctx context.Context, userID string, roleIDs []string) error

	GetRoles(ctx context.Context) ([]idp.Role, error)
	GetRole(ctx context.Context, roleID string) (*idp.Role, error)
	CreateRole(ctx context.Context, name string, description string) (*idp.Role, error)
	UpdateRole(ctx context.Context, roleID string, name string, description string) (*idp.Role, error)
	DeleteRole(ctx context.Context, roleID string) error
}

type identityHandler struct {
	logger   *zap.SugaredLogger
	identity IdentityAPI
	resolver *permission.Resolver
	notif    notifier.Notifier
}

func newIdentityHandler(logger *zap.SugaredLogger, identity IdentityAPI, resolver *permission.Resolver, notif notifier.Notifier) *identityHandler {
	return &identityHandler{
		logger:   logger,
		identity: identity,
		resolver: resolver,
		notif:    notif,
	}
}

func (h *identityHandler) register(r *gin.RouterGroup) {
	r.GET("/user/me", h.getCaller)
	r.GET("/permissions/me", h.getCallerPermissions)

	users := r.Group("/auth0/users")
	users.GET("", h.listUsers)
	users.POST("", h.createUser)
	users.GET("/:userId", h.getUser)
	users.PATCH("/:userId", h.updateUser)
	users.DELETE("/:userId", h.deleteUser)
	users.POST("/:userId/blocked", h.setUserBlocked)
	users.POST("/:userId/verification-email", h.sendVerificationEmail)
	users.GET("/:userId/roles", h.getUserRoles)
	users.POST("/:userId/roles", h.assignRoles)
	users.DELETE("/:userId/roles", h.removeRoles)

	roles := r.Group("/auth0/roles")
	roles.GET("", h.listRoles)
	roles.POST("", h.createRole)
	roles.GET("/:roleId", h.getRole)
	roles.PATCH("/:roleId", h.updateRole)
	roles.DELETE("/:roleId", h.deleteRole)
	roles.GET("/:roleId/permissions", h.getRolePermissions)
	roles.PUT("/:roleId/permissions", h.setRolePermissions)
}

func (h *identityHandler) getCaller(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sub":   callerID(c),
		"email": callerEmail(c),
		"name":  c.GetString(ctxKeyName),
	})
}

func (h *identityHandler) getCallerPermissions(c *gin.Context) {
	ctx := c.Request.Context()

	var grant *permission.Grant
	if c.Query("refresh") == "1" {
		grant = h.resolver.Refresh(ctx, callerID(c), callerEmail(c))
	} else {
		grant = h.resolver.Resolve(ctx, callerID(c), callerEmail(c))
	}

	c.JSON(http.StatusOK, grant)
}

func (h *identityHandler) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if perPage <= 0 || perPage > 100 {
		perPage = 50
	}

	users, err := h.identity.GetUsers(c.Request.Context(), page, perPage)
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *identityHandler) getUser(c *gin.Context) {
	user, err := h.identity.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *identityHandler) createUser(c *gin.Context) {
	var req idp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	user, err := h.identity.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *identityHandler) updateUser(c *gin.Context) {
	var req idp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.UpdateUser(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *identityHandler) deleteUser(c *gin.Context) {
	if err := h.identity.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *identityHandler) setUserBlocked(c *gin.Context) {
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.SetUserBlocked(c.Request.Context(), c.Param("userId"), req.Blocked)
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *identityHandler) sendVerificationEmail(c *gin.Context) {
	if err := h.identity.SendVerificationEmail(c.Request.Context(), c.Param("userId")); err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (h *identityHandler) getUserRoles(c *gin.Context) {
	roles, err := h.identity.GetUserRoles(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

type userRolesRequest struct {
	Roles []string `json:"roles"`
}

func (h *identityHandler) assignRoles(c *gin.Context) {
	h.changeUserRoles(c, h.identity.AssignRoles, notifier.ChangeTypeAdd)
}

func (h *identityHandler) removeRoles(c *gin.Context) {
	h.changeUserRoles(c, h.identity.RemoveRoles, notifier.ChangeTypeRemove)
}

func (h *identityHandler) changeUserRoles(c *gin.Context, apply func(context.Context, string, []string) error, changeType notifier.ChangeType) {
	var req userRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Roles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roles is required"})
		return
	}

	ctx := c.Request.Context()
	userID := c.Param("userId")
	if err := apply(ctx, userID, req.Roles); err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	// The user's effective permissions changed under them.
	h.resolver.Invalidate(ctx, userID)
	for _, roleID := range req.Roles {
		if err := h.notif.UserRolesUpdate(ctx, userID, roleID, changeType); err != nil {
			h.logger.Errorw("failed to notify user roles update", "userId", userID, "roleId", roleID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type roleResponse struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Permissions permission.SectionPermissionMap `json:"permissions"`
}

// toRoleResponse splits the embedded permission suffix out of the stored
// description. A malformed suffix renders as an empty permission map.
func (h *identityHandler) toRoleResponse(role idp.Role) roleResponse {
	text, perms, err := permission.ExtractDescription(role.Description)
	if err != nil {
		h.logger.Warnw("role has malformed permissions", "roleId", role.ID, "roleName", role.Name, "error", err)
	}
	return roleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: text,
		Permissions: perms,
	}
}

func (h *identityHandler) listRoles(c *gin.Context) {
	roles, err := h.identity.GetRoles(c.Request.Context())
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	out := make([]roleResponse, len(roles))
	for i, role := range roles {
		out[i] = h.toRoleResponse(role)
	}
	c.JSON(http.StatusOK, out)
}

func (h *identityHandler) getRole(c *gin.Context) {
	role, err := h.identity.GetRole(c.Request.Context(), c.Param("roleId"))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.toRoleResponse(*role))
}

type roleRequest struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Permissions permission.SectionPermissionMap `json:"permissions"`
}

func (h *identityHandler) createRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	role, err := h.identity.CreateRole(ctx, req.Name, permission.FormatDescription(req.Description, req.Permissions))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	if err := h.notif.RoleUpdate(ctx, role, notifier.ChangeTypeCreate); err != nil {
		h.logger.Errorw("failed to notify role update", "roleId", role.ID, "error", err)
	}
	c.JSON(http.StatusCreated, h.toRoleResponse(*role))
}

func (h *identityHandler) updateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	roleID := c.Param("roleId")

	existing, err := h.identity.GetRole(ctx, roleID)
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	name := req.Name
	if name == "" {
		name = existing.Name
	}

	// Preserve the embedded permissions unless the request replaces them.
	perms := req.Permissions
	if perms == nil {
		_, perms, _ = permission.ExtractDescription(existing.Description)
	}
	text := req.Description
	if text == "" {
		text, _, _ = permission.ExtractDescription(existing.Description)
	}

	role, err := h.identity.UpdateRole(ctx, roleID, name, permission.FormatDescription(text, perms))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	h.resolver.InvalidateAll(ctx)
	if err := h.notif.RoleUpdate(ctx, role, notifier.ChangeTypeModify); err != nil {
		h.logger.Errorw("failed to notify role update", "roleId", role.ID, "error", err)
	}
	c.JSON(http.StatusOK, h.toRoleResponse(*role))
}

func (h *identityHandler) deleteRole(c *gin.Context) {
	ctx := c.Request.Context()
	roleID := c.Param("roleId")

	if err := h.identity.DeleteRole(ctx, roleID); err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	h.resolver.InvalidateAll(ctx)
	if err := h.notif.RoleUpdate(ctx, &idp.Role{ID: roleID}, notifier.ChangeTypeDelete); err != nil {
		h.logger.Errorw("failed to notify role update", "roleId", roleID, "error", err)
	}
	c.Status(http.StatusNoContent)
}

func (h *identityHandler) getRolePermissions(c *gin.Context) {
	role, err := h.identity.GetRole(c.Request.Context(), c.Param("roleId"))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": h.toRoleResponse(*role).Permissions})
}

type rolePermissionsRequest struct {
	Permissions permission.SectionPermissionMap `json:"permissions"`
}

func (h *identityHandler) setRolePermissions(c *gin.Context) {
	var req rolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	roleID := c.Param("roleId")

	existing, err := h.identity.GetRole(ctx, roleID)
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	text, _, _ := permission.ExtractDescription(existing.Description)
	role, err := h.identity.UpdateRole(ctx, roleID, existing.Name, permission.FormatDescription(text, req.Permissions))
	if err != nil {
		respondIdentityError(c, h.logger, err)
		return
	}

	h.resolver.InvalidateAll(ctx)
	if err := h.notif.RoleUpdate(ctx, role, notifier.ChangeTypeModify); err != nil {
		h.logger.Errorw("failed to notify role update", "roleId", roleID, "error", err)
	}
	c.JSON(http.StatusOK, h.toRoleResponse(*role))
}
