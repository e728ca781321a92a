package models

import "time"

// Audited entity types.
const (
	AuditEntityClass        = "class"
	AuditEntityChild        = "child"
	AuditEntityAnnouncement = "announcement"
	AuditEntityUser         = "user"
	AuditEntityTeacherClass = "teacher_class"
)

// Audited actions.
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionPromote = "promote_class_rep"
	AuditActionAssign  = "assign_teacher"
)

// AuditLog is an append-only record of a mutation.
type AuditLog struct {
	ID          int64     `db:"id" json:"id"`
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    int64     `db:"entity_id" json:"entity_id"`
	Action      string    `db:"action" json:"action"`
	PerformedBy *int64    `db:"performed_by" json:"performed_by"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}

// AuditFilter narrows GET /admin/audit-logs.
type AuditFilter struct {
	EntityType string
	Limit      int
}
