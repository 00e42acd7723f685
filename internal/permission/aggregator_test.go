package permission

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
)

func roleWithPerms(id string, perms SectionPermissionMap) idp.Role {
	return idp.Role{
		ID:          id,
		Name:        fmt.Sprintf("role-%s", id),
		Description: FormatDescription(fmt.Sprintf("Role %s", id), perms),
	}
}

func TestAggregate(t *testing.T) {
	editorRole := roleWithPerms("editor", SectionPermissionMap{
		"videos": {View: true, Create: true},
	})
	reviewerRole := roleWithPerms("reviewer", SectionPermissionMap{
		"videos":    {View: true, Read: true},
		"playlists": {View: true},
	})
	brokenRole := idp.Role{
		ID:          "broken",
		Name:        "role-broken",
		Description: `Broken - Custom Permissions: {"videos":{"view":tru`,
	}
	emptyRole := idp.Role{
		ID:          "plain",
		Name:        "role-plain",
		Description: "No embedded permissions here",
	}

	tests := []struct {
		name string

		roles []idp.Role

		expected SectionPermissionMap
	}{
		{
			name: "no_roles",

			roles: []idp.Role{},

			expected: SectionPermissionMap{},
		},
		{
			name: "single_role",

			roles: []idp.Role{editorRole},

			expected: SectionPermissionMap{
				"videos": {View: true, Create: true},
			},
		},
		{
			name: "union_of_two_roles",

			roles: []idp.Role{editorRole, reviewerRole},

			expected: SectionPermissionMap{
				"videos":    {View: true, Create: true, Read: true},
				"playlists": {View: true},
			},
		},
		{
			name: "malformed_role_skipped_whole",

			roles: []idp.Role{editorRole, brokenRole},

			expected: SectionPermissionMap{
				"videos": {View: true, Create: true},
			},
		},
		{
			name: "role_without_permissions_contributes_nothing",

			roles: []idp.Role{emptyRole, reviewerRole},

			expected: SectionPermissionMap{
				"videos":    {View: true, Read: true},
				"playlists": {View: true},
			},
		},
	}

	logger := zap.NewNop().Sugar()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Aggregate(logger, test.roles))
		})
	}
}

// The merge is a union, so role order must not matter.
func TestAggregateCommutative(t *testing.T) {
	a := roleWithPerms("a", SectionPermissionMap{"videos": {View: true, Delete: true}})
	b := roleWithPerms("b", SectionPermissionMap{"videos": {Create: true}, "dashboard": {View: true}})
	c := roleWithPerms("c", SectionPermissionMap{"dashboard": {Read: true}})

	logger := zap.NewNop().Sugar()
	expected := Aggregate(logger, []idp.Role{a, b, c})

	assert.Equal(t, expected, Aggregate(logger, []idp.Role{c, b, a}))
	assert.Equal(t, expected, Aggregate(logger, []idp.Role{b, a, c}))
}

// Aggregating a role twice must give the same result as once.
func TestAggregateIdempotent(t *testing.T) {
	a := roleWithPerms("a", SectionPermissionMap{"videos": {View: true, Update: true}})
	b := roleWithPerms("b", SectionPermissionMap{"playlists": {View: true}})

	logger := zap.NewNop().Sugar()

	assert.Equal(t,
		Aggregate(logger, []idp.Role{a, b}),
		Aggregate(logger, []idp.Role{a, a, b, b}),
	)
}

// Adding a role can only widen the result, never narrow it.
func TestAggregateMonotone(t *testing.T) {
	a := roleWithPerms("a", SectionPermissionMap{"videos": {View: true}})
	b := roleWithPerms("b", SectionPermissionMap{"videos": {Delete: true}, "settings": {View: true}})

	logger := zap.NewNop().Sugar()
	before := Aggregate(logger, []idp.Role{a})
	after := Aggregate(logger, []idp.Role{a, b})

	for section, perms := range before {
		for _, action := range []Action{ActionView, ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
			if perms.Allows(action) {
				assert.True(t, after[section].Allows(action),
					"section %q lost %q after adding a role", section, action)
			}
		}
	}
}
