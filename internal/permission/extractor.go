package permission

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Roles have no structured metadata at the identity provider, so the admin
// panel historically appends the permission map to the role's free-text
// description. Both the suffix convention and the bare marker are in the wild.
const (
	customPermissionsMarker = " - Custom Permissions:"
	permissionsMarker       = "PERMISSIONS:"
)

// ExtractDescription parses a role description into its human-readable text
// and the embedded permission map. A description with no marker is the normal
// "role has no custom permissions yet" state and yields an empty map with no
// error. A marker followed by unparseable JSON yields an empty map and an
// error so callers can log it and skip the role.
func ExtractDescription(description string) (string, SectionPermissionMap, error) {
	var textLines []string
	var payload string

	for _, line := range strings.Split(description, "\n") {
		p, ok := permissionPayload(line)
		if !ok {
			textLines = append(textLines, line)
			continue
		}
		if payload == "" {
			payload = p
		}
		// The suffix convention keeps the text and the payload on one line.
		if idx := strings.Index(line, customPermissionsMarker); idx >= 0 {
			if lead := strings.TrimSpace(line[:idx]); lead != "" {
				textLines = append(textLines, lead)
			}
		}
	}
	text := strings.TrimSpace(strings.Join(textLines, "\n"))

	if payload == "" {
		return text, SectionPermissionMap{}, nil
	}

	perms := SectionPermissionMap{}
	if err := json.Unmarshal([]byte(payload), &perms); err != nil {
		return text, SectionPermissionMap{}, fmt.Errorf("failed to parse permission JSON: %w", err)
	}
	return text, perms, nil
}

// ExtractRolePermissions returns only the embedded permission map.
func ExtractRolePermissions(description string) (SectionPermissionMap, error) {
	_, perms, err := ExtractDescription(description)
	return perms, err
}

// FormatDescription re-embeds a permission map into a description, replacing
// any previously embedded map. An empty map strips the suffix entirely.
func FormatDescription(text string, perms SectionPermissionMap) string {
	clean := text
	if idx := strings.Index(clean, customPermissionsMarker); idx >= 0 {
		clean = strings.TrimSpace(clean[:idx])
	}
	if len(perms) == 0 {
		return clean
	}

	// Marshal cannot fail here: the map is strings to plain bool structs.
	payload, _ := json.Marshal(perms)
	return clean + customPermissionsMarker + " " + string(payload)
}

func permissionPayload(line string) (string, bool) {
	if idx := strings.Index(line, customPermissionsMarker); idx >= 0 {
		return strings.TrimSpace(line[idx+len(customPermissionsMarker):]), true
	}
	if idx := strings.Index(line, permissionsMarker); idx >= 0 {
		return strings.TrimSpace(line[idx+len(permissionsMarker):]), true
	}
	// Descriptions written by older panel builds carried the bare JSON map on
	// its own line with no marker at all.
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") && (strings.Contains(trimmed, `"view"`) || strings.Contains(trimmed, `"create"`)) {
		return trimmed, true
	}
	return "", false
}
