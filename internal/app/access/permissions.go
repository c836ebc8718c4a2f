package access

import "github.com/nrandria/tutoria/internal/app/models"

// Action identifies a role-gated operation on the API surface.
type Action string

const (
	ActionUsersList   Action = "users.list"
	ActionUsersGet    Action = "users.get"
	ActionUsersCreate Action = "users.create"
	ActionUsersUpdate Action = "users.update"
	ActionUsersDelete Action = "users.delete"

	ActionStudentsList            Action = "students.list"
	ActionStudentsGet             Action = "students.get"
	ActionStudentsCreate          Action = "students.create"
	ActionStudentsUpdate          Action = "students.update"
	ActionStudentsDelete          Action = "students.delete"
	ActionStudentsAssignFormateur Action = "students.assignFormateur"
	ActionStudentsAssignParent    Action = "students.assignParent"

	ActionNotesList   Action = "notes.list"
	ActionNotesGet    Action = "notes.get"
	ActionNotesCreate Action = "notes.create"
	ActionNotesUpdate Action = "notes.update"
	ActionNotesDelete Action = "notes.delete"

	ActionMessagesList   Action = "messages.list"
	ActionMessagesGet    Action = "messages.get"
	ActionMessagesCreate Action = "messages.create"
	ActionMessagesUpdate Action = "messages.update"
	ActionMessagesDelete Action = "messages.delete"
)

var allRoles = []models.Role{models.RoleAdmin, models.RoleFormateur, models.RoleParent}

// permissionTable maps each action to the roles allowed to perform it.
// Record-level visibility and ownership checks stay in the services;
// this table only gates by role.
var permissionTable = map[Action][]models.Role{
	ActionUsersList:   {models.RoleAdmin},
	ActionUsersGet:    {models.RoleAdmin, models.RoleFormateur},
	ActionUsersCreate: {models.RoleAdmin},
	ActionUsersUpdate: {models.RoleAdmin},
	ActionUsersDelete: {models.RoleAdmin},

	ActionStudentsList:            allRoles,
	ActionStudentsGet:             allRoles,
	ActionStudentsCreate:          {models.RoleAdmin, models.RoleFormateur},
	ActionStudentsUpdate:          {models.RoleAdmin, models.RoleFormateur},
	ActionStudentsDelete:          {models.RoleAdmin, models.RoleFormateur},
	ActionStudentsAssignFormateur: {models.RoleAdmin, models.RoleFormateur},
	ActionStudentsAssignParent:    {models.RoleAdmin, models.RoleFormateur},

	ActionNotesList:   allRoles,
	ActionNotesGet:    allRoles,
	ActionNotesCreate: {models.RoleAdmin, models.RoleFormateur},
	ActionNotesUpdate: {models.RoleAdmin, models.RoleFormateur},
	ActionNotesDelete: {models.RoleAdmin, models.RoleFormateur},

	ActionMessagesList:   allRoles,
	ActionMessagesGet:    allRoles,
	ActionMessagesCreate: allRoles,
	ActionMessagesUpdate: allRoles,
	ActionMessagesDelete: allRoles,
}

// RoleAllowed reports whether the role may perform the action. Unknown
// actions are denied.
func RoleAllowed(action Action, role models.Role) bool {
	for _, allowed := range permissionTable[action] {
		if allowed == role {
			return true
		}
	}
	return false
}
