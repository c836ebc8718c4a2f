package access

import (
	"testing"

	"github.com/nrandria/tutoria/internal/app/models"
)

func TestPermissionTable(t *testing.T) {
	cases := []struct {
		action Action
		role   models.Role
		want   bool
	}{
		{ActionUsersList, models.RoleAdmin, true},
		{ActionUsersList, models.RoleFormateur, false},
		{ActionUsersList, models.RoleParent, false},
		{ActionUsersGet, models.RoleAdmin, true},
		{ActionUsersGet, models.RoleFormateur, true},
		{ActionUsersGet, models.RoleParent, false},
		{ActionUsersDelete, models.RoleFormateur, false},

		{ActionStudentsList, models.RoleParent, true},
		{ActionStudentsCreate, models.RoleFormateur, true},
		{ActionStudentsCreate, models.RoleParent, false},
		{ActionStudentsAssignParent, models.RoleAdmin, true},
		{ActionStudentsAssignParent, models.RoleParent, false},

		{ActionNotesCreate, models.RoleFormateur, true},
		{ActionNotesCreate, models.RoleParent, false},
		{ActionNotesList, models.RoleParent, true},

		{ActionMessagesCreate, models.RoleParent, true},
		{ActionMessagesList, models.RoleFormateur, true},
	}

	for _, tc := range cases {
		if got := RoleAllowed(tc.action, tc.role); got != tc.want {
			t.Fatalf("%s for %s: expected %v, got %v", tc.action, tc.role, tc.want, got)
		}
	}
}

func TestUnknownActionDenied(t *testing.T) {
	if RoleAllowed(Action("nonexistent"), models.RoleAdmin) {
		t.Fatal("unknown actions must be denied")
	}
}
