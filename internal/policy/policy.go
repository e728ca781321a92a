// Package policy holds the role predicates every route gate is built from.
package policy

import "github.com/klasstra/klasstra-api/internal/models"

// CanCreateAnnouncements reports whether role may post announcements and use the AI assistant.
func CanCreateAnnouncements(role models.UserRole) bool {
	switch role {
	case models.RoleTeacher, models.RoleClassRep, models.RoleAdmin:
		return true
	}
	return false
}

// CanManageUsers reports whether role may administer users, classes and assignments.
func CanManageUsers(role models.UserRole) bool {
	return role == models.RoleAdmin
}

// IsParent reports whether role has children. Class reps are parents too.
func IsParent(role models.UserRole) bool {
	return role == models.RoleParent || role == models.RoleClassRep
}

// IsTeacher reports whether role is exactly teacher.
func IsTeacher(role models.UserRole) bool {
	return role == models.RoleTeacher
}

// IsValidRole reports whether role is one of the fixed roles.
func IsValidRole(role models.UserRole) bool {
	for _, r := range models.Roles {
		if r == role {
			return true
		}
	}
	return false
}
