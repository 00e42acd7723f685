package permission

import (
	"lacajita-admin/internal/idp"

	"go.uber.org/zap"
)

// Aggregate merges the permission maps of all given roles into one effective
// map. A section grants an action iff at least one role grants it, so the
// result is independent of role order and re-aggregation changes nothing.
// Roles whose embedded JSON cannot be parsed are skipped whole; a valid
// fragment inside a malformed role is never salvaged.
func Aggregate(logger *zap.SugaredLogger, roles []idp.Role) SectionPermissionMap {
	combined := SectionPermissionMap{}

	for _, role := range roles {
		rolePerms, err := ExtractRolePermissions(role.Description)
		if err != nil {
			logger.Warnw("skipping role with malformed permissions", "roleId", role.ID, "roleName", role.Name, "error", err)
			continue
		}

		for section, perms := range rolePerms {
			combined[section] = combined[section].Or(perms)
		}
	}

	return combined
}
