package models

// Role defines what a member may do in the church admin tool
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleDepartmentLeader Role = "department_leader"
	RoleEventLeader      Role = "event_leader"
	RoleMember           Role = "member"
	RoleViewOnly         Role = "view_only"
)

// Roles lists every role in display order
var Roles = []Role{RoleAdmin, RoleDepartmentLeader, RoleEventLeader, RoleMember, RoleViewOnly}

// rolePermissions is descriptive only; nothing in the API enforces it.
var rolePermissions = map[Role][]string{
	RoleAdmin:            {"View All Data", "Edit All Data", "Delete Records", "Manage Users", "System Settings", "Generate Reports", "Manage PINs", "Department Access"},
	RoleDepartmentLeader: {"View Department Data", "Edit Attendance", "Manage Checklists", "View Reports", "Call First-Timers"},
	RoleEventLeader:      {"Create Events", "Mark Attendance", "View Event Data", "Generate Event Reports"},
	RoleMember:           {"View Own Data", "Update Profile"},
	RoleViewOnly:         {"View Public Data", "View Events", "View Dashboard"},
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns a copy of the capability list for the role
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// RequiresPIN reports whether members with this role are issued a PIN
func (r Role) RequiresPIN() bool {
	return r != RoleMember
}

// EventType classifies an event
type EventType string

const (
	EventTypeSundayService EventType = "sunday_service"
	EventTypeCellGroup     EventType = "cell_group"
	EventTypeCustom        EventType = "custom"
)

// Valid reports whether t is a known event type
func (t EventType) Valid() bool {
	switch t {
	case EventTypeSundayService, EventTypeCellGroup, EventTypeCustom:
		return true
	}
	return false
}

// CallStatus is the outcome of a first-timer follow-up call
type CallStatus string

const (
	CallStatusAttempted      CallStatus = "attempted"
	CallStatusConnected      CallStatus = "connected"
	CallStatusNoAnswer       CallStatus = "no_answer"
	CallStatusFollowUpNeeded CallStatus = "follow_up_needed"
)

// Valid reports whether s is a known call status
func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusAttempted, CallStatusConnected, CallStatusNoAnswer, CallStatusFollowUpNeeded:
		return true
	}
	return false
}
