package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string

		description string

		expectedText  string
		expectedPerms SectionPermissionMap
		expectedErr   bool
	}{
		{
			name: "plain_description",

			description: "Content editors for the watch section",

			expectedText:  "Content editors for the watch section",
			expectedPerms: SectionPermissionMap{},
		},
		{
			name: "empty_description",

			description: "",

			expectedText:  "",
			expectedPerms: SectionPermissionMap{},
		},
		{
			name: "suffix_marker",

			description: `Video managers - Custom Permissions: {"videos":{"view":true,"create":true,"read":true,"update":false,"delete":false}}`,

			expectedText: "Video managers",
			expectedPerms: SectionPermissionMap{
				"videos": {View: true, Create: true, Read: true},
			},
		},
		{
			name: "permissions_line_marker",

			description: "Editors\nPERMISSIONS: {\"playlists\":{\"view\":true,\"read\":true}}",

			expectedText: "Editors",
			expectedPerms: SectionPermissionMap{
				"playlists": {View: true, Read: true},
			},
		},
		{
			name: "bare_json_line",

			description: "Analysts\n{\"dashboard\":{\"view\":true,\"create\":false,\"read\":true}}",

			expectedText: "Analysts",
			expectedPerms: SectionPermissionMap{
				"dashboard": {View: true, Read: true},
			},
		},
		{
			name: "malformed_json",

			description: `Broken role - Custom Permissions: {"videos":{"view":tru`,

			expectedText:  "Broken role",
			expectedPerms: SectionPermissionMap{},
			expectedErr:   true,
		},
		{
			name: "multiple_sections",

			description: `Ops - Custom Permissions: {"videos":{"view":true},"playlists":{"view":true,"delete":true}}`,

			expectedText: "Ops",
			expectedPerms: SectionPermissionMap{
				"videos":    {View: true},
				"playlists": {View: true, Delete: true},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text, perms, err := ExtractDescription(test.description)
			if test.expectedErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, test.expectedText, text)
			assert.Equal(t, test.expectedPerms, perms)
		})
	}
}

func TestFormatDescription(t *testing.T) {
	tests := []struct {
		name string

		text  string
		perms SectionPermissionMap

		expected string
	}{
		{
			name: "no_permissions",

			text:  "Just a role",
			perms: SectionPermissionMap{},

			expected: "Just a role",
		},
		{
			name: "with_permissions",

			text: "Video managers",
			perms: SectionPermissionMap{
				"videos": {View: true, Read: true},
			},

			expected: `Video managers - Custom Permissions: {"videos":{"view":true,"create":false,"read":true,"update":false,"delete":false}}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, FormatDescription(test.text, test.perms))
		})
	}
}

// Formatting a description and extracting it again must give back the same
// clean text and permission map.
func TestFormatExtractRoundTrip(t *testing.T) {
	perms := SectionPermissionMap{
		"videos":    {View: true, Create: true},
		"dashboard": {View: true, Read: true},
	}

	formatted := FormatDescription("Mixed role", perms)

	text, extracted, err := ExtractDescription(formatted)
	require.NoError(t, err)

	assert.Equal(t, "Mixed role", text)
	assert.Equal(t, perms, extracted)
}

func TestFormatDescriptionReplacesExistingSuffix(t *testing.T) {
	original := `Old - Custom Permissions: {"videos":{"view":true,"create":false,"read":false,"update":false,"delete":false}}`

	updated := FormatDescription(original, SectionPermissionMap{"playlists": {View: true}})

	text, perms, err := ExtractDescription(updated)
	require.NoError(t, err)

	assert.Equal(t, "Old", text)
	assert.Equal(t, SectionPermissionMap{"playlists": {View: true}}, perms)
}
