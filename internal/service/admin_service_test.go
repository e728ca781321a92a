package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasstra/klasstra-api/internal/models"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

func TestAssignTeacherIsIdempotent(t *testing.T) {
	users := newFakeUsers()
	classes := newFakeClasses()
	svc := NewAdminService(users, classes, newFakeTeacherClasses(), nil, nil)
	teacher := users.add(models.User{Username: "t", Role: models.RoleTeacher})
	class := classes.add("5B")
	req := models.AssignTeacherClassRequest{TeacherID: teacher.ID, ClassID: class.ID}

	first, err := svc.AssignTeacher(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "Assigned teacher_id=1 to class_id=1.", first.Message)

	second, err := svc.AssignTeacher(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, "Teacher is already assigned to this class.", second.Message)
}

func TestAssignTeacherRejectsInvalidInput(t *testing.T) {
	users := newFakeUsers()
	classes := newFakeClasses()
	svc := NewAdminService(users, classes, newFakeTeacherClasses(), nil, nil)
	parent := users.add(models.User{Username: "p", Role: models.RoleParent})
	teacher := users.add(models.User{Username: "t", Role: models.RoleTeacher})
	class := classes.add("5B")

	tests := []struct {
		name    string
		req     models.AssignTeacherClassRequest
		message string
	}{
		{"not a teacher", models.AssignTeacherClassRequest{TeacherID: parent.ID, ClassID: class.ID}, "Invalid teacher_id or user is not a teacher."},
		{"unknown user", models.AssignTeacherClassRequest{TeacherID: 99, ClassID: class.ID}, "Invalid teacher_id or user is not a teacher."},
		{"unknown class", models.AssignTeacherClassRequest{TeacherID: teacher.ID, ClassID: 99}, "Class not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AssignTeacher(context.Background(), tc.req)
			appErr := appErrors.FromError(err)
			assert.Equal(t, 400, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}

	_, err := svc.AssignTeacher(context.Background(), models.AssignTeacherClassRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestPromoteClassRep(t *testing.T) {
	users := newFakeUsers()
	svc := NewAdminService(users, newFakeClasses(), newFakeTeacherClasses(), nil, nil)
	parent := users.add(models.User{Username: "p", Role: models.RoleParent})

	require.NoError(t, svc.PromoteClassRep(context.Background(), parent.ID))
	stored, err := users.FindByID(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClassRep, stored.Role)
	assert.NotNil(t, stored.UpdatedAt)

	err = svc.PromoteClassRep(context.Background(), 404)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "User not found", appErrors.FromError(err).Message)
}
