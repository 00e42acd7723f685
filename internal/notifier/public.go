package notifier

import (
	"context"

	"lacajita-admin/internal/idp"
)

type ChangeType string

const (
	ChangeTypeCreate ChangeType = "CREATE"
	ChangeTypeModify ChangeType = "MODIFY"
	ChangeTypeDelete ChangeType = "DELETE"

	ChangeTypeAdd    ChangeType = "ADD"
	ChangeTypeRemove ChangeType = "REMOVE"
)

// Notifier broadcasts admin panel changes so other consumers (cache
// invalidators, audit sinks) can react. Implementations are fire-and-forget;
// a failed publish is logged by the caller but never rolls back the change.
type Notifier interface {
	RoleUpdate(ctx context.Context, role *idp.Role, changeType ChangeType) error
	UserRolesUpdate(ctx context.Context, userID string, roleID string, changeType ChangeType) error
	ContentUpdate(ctx context.Context, kind string, contentID string, changeType ChangeType) error
}
