package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrudPermissionsOr(t *testing.T) {
	a := CrudPermissions{View: true, Create: true}
	b := CrudPermissions{View: true, Delete: true}

	merged := a.Or(b)

	assert.Equal(t, CrudPermissions{View: true, Create: true, Delete: true}, merged)
	assert.Equal(t, merged, b.Or(a))
	assert.Equal(t, a, a.Or(a))
	assert.Equal(t, a, a.Or(CrudPermissions{}))
}

func TestCrudPermissionsAllows(t *testing.T) {
	perms := CrudPermissions{View: true, Read: true}

	assert.True(t, perms.Allows(ActionView))
	assert.True(t, perms.Allows(ActionRead))
	assert.False(t, perms.Allows(ActionCreate))
	assert.False(t, perms.Allows(ActionUpdate))
	assert.False(t, perms.Allows(ActionDelete))
	assert.False(t, perms.Allows(Action("unknown")))
}

func TestCrudPermissionsAny(t *testing.T) {
	assert.False(t, CrudPermissions{}.Any())
	assert.True(t, CrudPermissions{Delete: true}.Any())
	assert.True(t, AllCrud().Any())
}
