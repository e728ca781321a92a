package models

import "time"

// RecipientType discriminates what an announcement's recipient id refers to.
type RecipientType string

const (
	RecipientClass  RecipientType = "class"
	RecipientParent RecipientType = "parent"
)

// Recipient is the target of an announcement: a class or a single parent.
type Recipient struct {
	Type RecipientType
	ID   int64
}

// ClassRecipient targets every parent with a child in classID.
func ClassRecipient(classID int64) Recipient {
	return Recipient{Type: RecipientClass, ID: classID}
}

// ParentRecipient targets one parent-like user.
func ParentRecipient(userID int64) Recipient {
	return Recipient{Type: RecipientParent, ID: userID}
}

// Valid reports whether the recipient is well formed. It does not check existence.
func (r Recipient) Valid() bool {
	return (r.Type == RecipientClass || r.Type == RecipientParent) && r.ID > 0
}

// Announcement is a persisted announcement row.
type Announcement struct {
	ID              int64         `db:"id" json:"id"`
	Title           string        `db:"title" json:"title"`
	Body            string        `db:"body" json:"body"`
	CreatedByID     int64         `db:"created_by_id" json:"created_by_id"`
	LastUpdatedByID *int64        `db:"last_updated_by_id" json:"last_updated_by_id,omitempty"`
	RecipientType   RecipientType `db:"recipient_type" json:"recipient_type"`
	RecipientID     int64         `db:"recipient_id" json:"recipient_id"`
	AttachmentURL   *string       `db:"attachment_url" json:"attachment_url"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// AnnouncementView is an announcement with its creator and last editor resolved.
type AnnouncementView struct {
	Announcement
	CreatedBy     *User `json:"created_by"`
	LastUpdatedBy *User `json:"last_updated_by"`
}

// CreateAnnouncementRequest is the payload of POST /announcements/.
type CreateAnnouncementRequest struct {
	Title         string        `json:"title" validate:"required,max=255"`
	Body          string        `json:"body" validate:"required"`
	RecipientType RecipientType `json:"recipient_type" validate:"required,oneof=class parent"`
	RecipientID   int64         `json:"recipient_id" validate:"required,gt=0"`
	AttachmentURL *string       `json:"attachment_url"`
}

// TeacherAnnouncementRequest fans one announcement out to several recipients.
type TeacherAnnouncementRequest struct {
	Title         string  `json:"title" validate:"required,max=255"`
	Body          string  `json:"body" validate:"required"`
	AttachmentURL *string `json:"attachment_url"`
	Classes       []int64 `json:"classes" validate:"dive,gt=0"`
	Parents       []int64 `json:"parents" validate:"dive,gt=0"`
}

// UpdateAnnouncementRequest patches an announcement. Empty title or body are ignored.
type UpdateAnnouncementRequest struct {
	Title         *string `json:"title"`
	Body          *string `json:"body"`
	AttachmentURL *string `json:"attachment_url"`
}
