package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"lacajita-admin/internal/idp"
	"lacajita-admin/internal/permission"
)

const snapshotVersion = "1.0"

type Type string

const (
	TypeUsers Type = "users"
	TypeRoles Type = "roles"
	TypeBoth  Type = "both"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type Options struct {
	Type   Type
	Format Format

	// IncludeDetails adds provider-side account details to user entries and
	// the structured permission map to role entries.
	IncludeDetails bool
}

func (o Options) Validate() error {
	switch o.Type {
	case TypeUsers, TypeRoles, TypeBoth:
	default:
		return fmt.Errorf("invalid export type %q", o.Type)
	}
	switch o.Format {
	case FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("invalid export format %q", o.Format)
	}
	return nil
}

// UserRecord pairs a provider user with the panel-side state the snapshot
// needs: the local profile id, the resolved role names and the master flag.
type UserRecord struct {
	ID     string
	User   idp.User
	Roles  []string
	Master bool
}

type userDetails struct {
	EmailVerified bool       `json:"email_verified"`
	LoginsCount   int64      `json:"logins_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	LastIP        string     `json:"last_ip,omitempty"`
}

type exportedUser struct {
	ID              string       `json:"id"`
	Auth0ID         string       `json:"auth0Id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	IsActive        bool         `json:"isActive"`
	IsMasterAccount bool         `json:"isMasterAccount"`
	Roles           []string     `json:"roles"`
	LastLogin       *time.Time   `json:"lastLogin,omitempty"`
	Picture         string       `json:"picture,omitempty"`
	Auth0Data       *userDetails `json:"auth0Data,omitempty"`
}

type exportedRole struct {
	ID                string                          `json:"id"`
	Name              string                          `json:"name"`
	Description       string                          `json:"description"`
	CustomPermissions permission.SectionPermissionMap `json:"customPermissions,omitempty"`
}

type metadata struct {
	TotalUsers     int  `json:"totalUsers"`
	TotalRoles     int  `json:"totalRoles"`
	IncludeDetails bool `json:"includeDetails"`
}

// Snapshot is the JSON export payload.
type Snapshot struct {
	ExportedAt time.Time      `json:"exportedAt"`
	Version    string         `json:"version"`
	Metadata   metadata       `json:"metadata"`
	Users      []exportedUser `json:"users,omitempty"`
	Roles      []exportedRole `json:"roles,omitempty"`
}

// Exporter renders user/role snapshots. Malformed embedded permissions in a
// role never fail an export: the role appears with no structured permissions.
type Exporter struct {
	logger *zap.SugaredLogger
}

func NewExporter(logger *zap.SugaredLogger) *Exporter {
	return &Exporter{logger: logger}
}

// Render produces the export document and its content type.
func (e *Exporter) Render(opts Options, users []UserRecord, roles []idp.Role) ([]byte, string, error) {
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	if opts.Format == FormatCSV {
		data, err := e.renderCSV(opts, users, roles)
		return data, "text/csv; charset=utf-8", err
	}

	data, err := json.MarshalIndent(e.buildSnapshot(opts, users, roles), "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, "application/json", nil
}

// Filename follows the panel's download naming, e.g.
// lacajita-security-config-2024-05-01.csv.
func Filename(opts Options, now time.Time) string {
	return fmt.Sprintf("lacajita-security-config-%s.%s", now.UTC().Format("2006-01-02"), opts.Format)
}

func (e *Exporter) buildSnapshot(opts Options, users []UserRecord, roles []idp.Role) *Snapshot {
	snapshot := &Snapshot{
		ExportedAt: time.Now().UTC(),
		Version:    snapshotVersion,
		Metadata: metadata{
			TotalUsers:     len(users),
			TotalRoles:     len(roles),
			IncludeDetails: opts.IncludeDetails,
		},
	}

	if opts.Type == TypeUsers || opts.Type == TypeBoth {
		snapshot.Users = make([]exportedUser, len(users))
		for i, record := range users {
			entry := exportedUser{
				ID:              record.ID,
				Auth0ID:         record.User.UserID,
				Name:            record.User.Name,
				Email:           record.User.Email,
				IsActive:        !record.User.Blocked,
				IsMasterAccount: record.Master,
				Roles:           record.Roles,
				LastLogin:       record.User.LastLogin,
				Picture:         record.User.Picture,
			}
			if entry.Roles == nil {
				entry.Roles = []string{}
			}
			if opts.IncludeDetails {
				entry.Auth0Data = &userDetails{
					EmailVerified: record.User.EmailVerified,
					LoginsCount:   record.User.LoginsCount,
					CreatedAt:     record.User.CreatedAt,
					UpdatedAt:     record.User.UpdatedAt,
					LastLogin:     record.User.LastLogin,
					LastIP:        record.User.LastIP,
				}
			}
			snapshot.Users[i] = entry
		}
	}

	if opts.Type == TypeRoles || opts.Type == TypeBoth {
		snapshot.Roles = make([]exportedRole, len(roles))
		for i, role := range roles {
			text, perms := e.splitRoleDescription(role)
			entry := exportedRole{
				ID:          role.ID,
				Name:        role.Name,
				Description: text,
			}
			if opts.IncludeDetails && len(perms) > 0 {
				entry.CustomPermissions = perms
			}
			snapshot.Roles[i] = entry
		}
	}

	return snapshot
}

func (e *Exporter) renderCSV(opts Options, users []UserRecord, roles []idp.Role) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Banners separate the two blocks only when both are present; a
	// single-type export starts straight at the header row.
	both := opts.Type == TypeBoth

	if opts.Type == TypeUsers || both {
		if both {
			writeRow(w, []string{"USUARIOS"})
		}
		writeRow(w, []string{"ID", "Auth0 ID", "Nombre", "Email", "Activo", "Master", "Roles", "Último Login", "Email Verificado", "Total Logins"})
		for _, record := range users {
			lastLogin := ""
			if record.User.LastLogin != nil {
				lastLogin = record.User.LastLogin.UTC().Format(time.RFC3339)
			}
			writeRow(w, []string{
				record.ID,
				record.User.UserID,
				record.User.Name,
				record.User.Email,
				yesNo(!record.User.Blocked),
				yesNo(record.Master),
				strings.Join(record.Roles, ", "),
				lastLogin,
				yesNo(record.User.EmailVerified),
				strconv.FormatInt(record.User.LoginsCount, 10),
			})
		}
		if both {
			writeRow(w, []string{""})
		}
	}

	if opts.Type == TypeRoles || both {
		if both {
			writeRow(w, []string{"ROLES"})
		}
		writeRow(w, []string{"ID", "Nombre", "Descripción", "Permisos Personalizados"})
		for _, role := range roles {
			text, perms := e.splitRoleDescription(role)
			writeRow(w, []string{role.ID, role.Name, text, yesNo(len(perms) > 0)})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) splitRoleDescription(role idp.Role) (string, permission.SectionPermissionMap) {
	text, perms, err := permission.ExtractDescription(role.Description)
	if err != nil {
		e.logger.Warnw("exporting role without its malformed permissions", "roleId", role.ID, "roleName", role.Name, "error", err)
		return text, permission.SectionPermissionMap{}
	}
	return text, perms
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func writeRow(w *csv.Writer, record []string) {
	// Write on a bytes.Buffer cannot fail; csv errors surface from Flush.
	_ = w.Write(record)
}
