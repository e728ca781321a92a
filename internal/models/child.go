package models

import "time"

// Child is a pupil registered by a parent.
type Child struct {
	ID        int64     `db:"id" json:"id"`
	ParentID  int64     `db:"parent_id" json:"parent_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Class     *Class    `db:"-" json:"class,omitempty"`
}

// CreateChildRequest is the payload of POST /children/.
type CreateChildRequest struct {
	ParentID  int64  `json:"parent_id" validate:"required,gt=0"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	ClassID   int64  `json:"class_id" validate:"required,gt=0"`
}
