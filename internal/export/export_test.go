package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
)

func testRoles() []idp.Role {
	return []idp.Role{
		{
			ID:          "rol_1",
			Name:        "editor",
			Description: `Content editors - Custom Permissions: {"videos":{"view":true,"create":true,"read":true,"update":false,"delete":false}}`,
		},
		{
			ID:          "rol_2",
			Name:        "viewer",
			Description: "Read only accounts",
		},
	}
}

func testUsers() []UserRecord {
	lastLogin := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	return []UserRecord{
		{
			ID: "local-1",
			User: idp.User{
				UserID:        "auth0|abc",
				Name:          "Ana García",
				Email:         "ana@example.com",
				EmailVerified: true,
				LoginsCount:   42,
				LastLogin:     &lastLogin,
			},
			Roles: []string{"editor", "viewer"},
		},
		{
			ID: "local-2",
			User: idp.User{
				UserID:  "auth0|def",
				Name:    "Blocked User",
				Email:   "blocked@example.com",
				Blocked: true,
			},
			Roles:  []string{},
			Master: false,
		},
	}
}

func TestRenderOptionsValidation(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	_, _, err := exporter.Render(Options{Type: "everything", Format: FormatJSON}, nil, nil)
	assert.Error(t, err)

	_, _, err = exporter.Render(Options{Type: TypeUsers, Format: "xml"}, nil, nil)
	assert.Error(t, err)
}

func TestRenderJSON(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	data, contentType, err := exporter.Render(Options{Type: TypeBoth, Format: FormatJSON, IncludeDetails: true}, testUsers(), testRoles())
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "1.0", decoded["version"])
	assert.NotEmpty(t, decoded["exportedAt"])

	meta := decoded["metadata"].(map[string]any)
	assert.Equal(t, float64(2), meta["totalUsers"])
	assert.Equal(t, float64(2), meta["totalRoles"])
	assert.Equal(t, true, meta["includeDetails"])

	users := decoded["users"].([]any)
	require.Len(t, users, 2)
	first := users[0].(map[string]any)
	assert.Equal(t, "local-1", first["id"])
	assert.Equal(t, "auth0|abc", first["auth0Id"])
	assert.Equal(t, true, first["isActive"])
	assert.Equal(t, false, first["isMasterAccount"])
	details := first["auth0Data"].(map[string]any)
	assert.Equal(t, true, details["email_verified"])
	assert.Equal(t, float64(42), details["logins_count"])

	second := users[1].(map[string]any)
	assert.Equal(t, false, second["isActive"])

	roles := decoded["roles"].([]any)
	require.Len(t, roles, 2)
	editor := roles[0].(map[string]any)
	assert.Equal(t, "Content editors", editor["description"], "embedded permissions must not leak into the description")
	perms := editor["customPermissions"].(map[string]any)
	videos := perms["videos"].(map[string]any)
	assert.Equal(t, true, videos["view"])

	viewer := roles[1].(map[string]any)
	assert.Equal(t, "Read only accounts", viewer["description"])
	_, hasPerms := viewer["customPermissions"]
	assert.False(t, hasPerms)
}

func TestRenderJSONWithoutDetails(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	data, _, err := exporter.Render(Options{Type: TypeRoles, Format: FormatJSON}, nil, testRoles())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	_, hasUsers := decoded["users"]
	assert.False(t, hasUsers)

	editor := decoded["roles"].([]any)[0].(map[string]any)
	_, hasPerms := editor["customPermissions"]
	assert.False(t, hasPerms)
}

func TestRenderCSVRolesOnly(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	data, contentType, err := exporter.Render(Options{Type: TypeRoles, Format: FormatCSV}, nil, testRoles())
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", contentType)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Nombre,Descripción,Permisos Personalizados", lines[0])
	assert.Equal(t, "rol_1,editor,Content editors,Sí", lines[1])
	assert.Equal(t, "rol_2,viewer,Read only accounts,No", lines[2])
}

// An empty role list still yields the header row so the file is recognizably
// an export rather than an error artifact.
func TestRenderCSVEmptyRoles(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	data, _, err := exporter.Render(Options{Type: TypeRoles, Format: FormatCSV}, nil, []idp.Role{})
	require.NoError(t, err)

	assert.Equal(t, "ID,Nombre,Descripción,Permisos Personalizados\n", string(data))
}

func TestRenderCSVBothHasBanners(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	data, _, err := exporter.Render(Options{Type: TypeBoth, Format: FormatCSV}, testUsers(), testRoles())
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "USUARIOS\n"))
	assert.Contains(t, text, "\nROLES\n")
	assert.Contains(t, text, "ID,Auth0 ID,Nombre,Email,Activo,Master,Roles,Último Login,Email Verificado,Total Logins")

	// Blocked users export as inactive.
	assert.Contains(t, text, "local-2,auth0|def,Blocked User,blocked@example.com,No,No,,,No,0")
}

func TestRenderCSVUsersOnlyHasNoBanner(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	data, _, err := exporter.Render(Options{Type: TypeUsers, Format: FormatCSV}, testUsers(), nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "ID,Auth0 ID,Nombre,Email,"))
	assert.NotContains(t, string(data), "USUARIOS")
}

func TestRenderCSVMalformedRolePermissions(t *testing.T) {
	exporter := NewExporter(zap.NewNop().Sugar())

	roles := []idp.Role{{
		ID:          "rol_x",
		Name:        "broken",
		Description: `Broken - Custom Permissions: {"videos":{"view":tru`,
	}}

	data, _, err := exporter.Render(Options{Type: TypeRoles, Format: FormatCSV}, nil, roles)
	require.NoError(t, err)

	assert.Contains(t, string(data), "rol_x,broken,Broken,No")
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "lacajita-security-config-2024-05-01.json",
		Filename(Options{Type: TypeBoth, Format: FormatJSON}, now))
	assert.Equal(t, "lacajita-security-config-2024-05-01.csv",
		Filename(Options{Type: TypeRoles, Format: FormatCSV}, now))
}
