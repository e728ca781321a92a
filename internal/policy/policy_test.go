package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/klasstra/klasstra-api/internal/models"
)

func TestPredicatesOverAllRoles(t *testing.T) {
	cases := []struct {
		role        models.UserRole
		canCreate   bool
		canManage   bool
		isParent    bool
		isTeacher   bool
		isValidRole bool
	}{
		{models.RoleAdmin, true, true, false, false, true},
		{models.RoleTeacher, true, false, false, true, true},
		{models.RoleParent, false, false, true, false, true},
		{models.RoleClassRep, true, false, true, false, true},
		{"", false, false, false, false, false},
		{"ADMIN", false, false, false, false, false},
		{"student", false, false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.canCreate, CanCreateAnnouncements(tc.role))
			assert.Equal(t, tc.canManage, CanManageUsers(tc.role))
			assert.Equal(t, tc.isParent, IsParent(tc.role))
			assert.Equal(t, tc.isTeacher, IsTeacher(tc.role))
			assert.Equal(t, tc.isValidRole, IsValidRole(tc.role))
		})
	}
}
