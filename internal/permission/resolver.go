package permission

import (
	"context"

	"lacajita-admin/internal/idp"

	"go.uber.org/zap"
)

// RoleSource fetches the roles assigned to a user. The identity provider
// client satisfies this.
type RoleSource interface {
	GetUserRoles(ctx context.Context, userID string) ([]idp.Role, error)
}

// Cache is an optional store for resolved grants. Errors and misses both fall
// through to the live pipeline; the cache is never authoritative.
type Cache interface {
	GetGrant(ctx context.Context, userID string) (*Grant, bool)
	SetGrant(ctx context.Context, grant *Grant)
	InvalidateGrant(ctx context.Context, userID string)
	InvalidateAllGrants(ctx context.Context)
}

// Grant is a user's resolved permission state: the effective section map plus
// the role names it was derived from. Queries are pure reads; a refresh
// produces a new Grant rather than mutating one in place.
type Grant struct {
	UserID    string               `json:"userId"`
	Email     string               `json:"email"`
	Master    bool                 `json:"master"`
	RoleNames []string             `json:"roleNames"`
	Sections  SectionPermissionMap `json:"sections"`
}

func (g *Grant) HasPermission(section string, action Action) bool {
	if g.Master {
		return true
	}
	return g.Sections[section].Allows(action)
}

// CanAccess reports whether any action is permitted for the section.
func (g *Grant) CanAccess(section string) bool {
	if g.Master {
		return true
	}
	return g.Sections[section].Any()
}

func (g *Grant) HasRole(roleName string) bool {
	if g.Master {
		return true
	}
	for _, name := range g.RoleNames {
		if name == roleName {
			return true
		}
	}
	return false
}

func (g *Grant) HasAnyRole(roleNames ...string) bool {
	if g.Master {
		return true
	}
	for _, name := range roleNames {
		if g.HasRole(name) {
			return true
		}
	}
	return false
}

// Resolver runs the fetch-roles, extract, aggregate pipeline for a user.
// The master email is injected so tests can substitute their own identity;
// an empty value disables the override entirely.
type Resolver struct {
	logger      *zap.SugaredLogger
	roles       RoleSource
	cache       Cache
	masterEmail string
}

func NewResolver(logger *zap.SugaredLogger, roles RoleSource, cache Cache, masterEmail string) *Resolver {
	return &Resolver{
		logger:      logger,
		roles:       roles,
		cache:       cache,
		masterEmail: masterEmail,
	}
}

// Resolve returns the user's grant, consulting the cache first. The master
// account short-circuits before any role fetch.
func (r *Resolver) Resolve(ctx context.Context, userID string, email string) *Grant {
	if r.IsMasterAccount(email) {
		return masterGrant(userID, email)
	}

	if r.cache != nil {
		if grant, ok := r.cache.GetGrant(ctx, userID); ok {
			return grant
		}
	}

	return r.Refresh(ctx, userID, email)
}

// Refresh re-runs the whole pipeline, bypassing and then repopulating the
// cache. A failed role fetch degrades to the minimal default grant rather
// than blocking the caller.
func (r *Resolver) Refresh(ctx context.Context, userID string, email string) *Grant {
	if r.IsMasterAccount(email) {
		return masterGrant(userID, email)
	}

	roles, err := r.roles.GetUserRoles(ctx, userID)
	if err != nil {
		r.logger.Warnw("failed to fetch user roles, using default permissions", "userId", userID, "error", err)
		return &Grant{
			UserID:    userID,
			Email:     email,
			RoleNames: []string{},
			Sections:  DefaultSections(),
		}
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.Name
	}

	grant := &Grant{
		UserID:    userID,
		Email:     email,
		RoleNames: names,
		Sections:  Aggregate(r.logger, roles),
	}

	if r.cache != nil {
		r.cache.SetGrant(ctx, grant)
	}

	return grant
}

// Invalidate drops any cached grant, forcing the next Resolve to re-run the
// pipeline. Called after role mutations.
func (r *Resolver) Invalidate(ctx context.Context, userID string) {
	if r.cache != nil {
		r.cache.InvalidateGrant(ctx, userID)
	}
}

// InvalidateAll drops every cached grant. Called after a role itself is
// edited or deleted, since any user holding it would otherwise keep a stale
// grant until the TTL runs out.
func (r *Resolver) InvalidateAll(ctx context.Context) {
	if r.cache != nil {
		r.cache.InvalidateAllGrants(ctx)
	}
}

// IsMasterAccount compares case-sensitively against the configured master
// email.
func (r *Resolver) IsMasterAccount(email string) bool {
	return r.masterEmail != "" && email == r.masterEmail
}

// masterSections are the sections the panel renders; the master grant shows
// them all fully allowed. The override in Grant wins even for sections not
// listed here.
var masterSections = []string{
	"dashboard", "analytics", "users", "roles", "permissions", "settings",
	"ecommerce", "calendar", "profile", "forms", "tables", "charts",
	"authentication", "videos", "playlists",
}

func masterGrant(userID string, email string) *Grant {
	sections := SectionPermissionMap{}
	for _, section := range masterSections {
		sections[section] = AllCrud()
	}
	return &Grant{
		UserID:    userID,
		Email:     email,
		Master:    true,
		RoleNames: []string{},
		Sections:  sections,
	}
}

// DefaultSections is the minimal fallback used when the role fetch fails:
// the dashboard stays visible and the user can still see and update their
// own profile, everything else is denied.
func DefaultSections() SectionPermissionMap {
	return SectionPermissionMap{
		"dashboard": {View: true, Read: true},
		"profile":   {View: true, Read: true, Update: true},
	}
}
