package models

import "time"

// Class is a school class, e.g. "5B".
type Class struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateClassRequest is the payload of POST /classes/.
type CreateClassRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// TeacherClass links a teacher to a class they teach.
type TeacherClass struct {
	TeacherID int64 `db:"teacher_id" json:"teacher_id"`
	ClassID   int64 `db:"class_id" json:"class_id"`
}

// AssignTeacherClassRequest is accepted as JSON body or query parameters.
type AssignTeacherClassRequest struct {
	TeacherID int64 `json:"teacher_id" form:"teacher_id" validate:"required,gt=0"`
	ClassID   int64 `json:"class_id" form:"class_id" validate:"required,gt=0"`
}
