package permission

// Action is one of the five independently grantable capabilities per section.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CrudPermissions holds the five per-section capabilities. Fields absent from
// the serialized form decode to false, so a merged map always carries all five.
type CrudPermissions struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Allows reports whether the given action is granted.
func (c CrudPermissions) Allows(action Action) bool {
	switch action {
	case ActionView:
		return c.View
	case ActionCreate:
		return c.Create
	case ActionRead:
		return c.Read
	case ActionUpdate:
		return c.Update
	case ActionDelete:
		return c.Delete
	}
	return false
}

// Any reports whether at least one action is granted.
func (c CrudPermissions) Any() bool {
	return c.View || c.Create || c.Read || c.Update || c.Delete
}

// Or returns the field-wise logical OR of two permission sets.
func (c CrudPermissions) Or(other CrudPermissions) CrudPermissions {
	return CrudPermissions{
		View:   c.View || other.View,
		Create: c.Create || other.Create,
		Read:   c.Read || other.Read,
		Update: c.Update || other.Update,
		Delete: c.Delete || other.Delete,
	}
}

// AllCrud grants every action.
func AllCrud() CrudPermissions {
	return CrudPermissions{View: true, Create: true, Read: true, Update: true, Delete: true}
}

// SectionPermissionMap maps a section id (e.g. "videos", "dashboard") to the
// permissions granted for it. A section absent from the map grants nothing.
type SectionPermissionMap map[string]CrudPermissions
