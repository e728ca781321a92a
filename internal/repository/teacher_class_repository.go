package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TeacherClassRepository manages teacher to class assignments.
type TeacherClassRepository struct {
	db *sqlx.DB
}

// NewTeacherClassRepository constructs a TeacherClassRepository.
func NewTeacherClassRepository(db *sqlx.DB) *TeacherClassRepository {
	return &TeacherClassRepository{db: db}
}

// Assign links teacherID to classID. It reports false when the pair already existed.
func (r *TeacherClassRepository) Assign(ctx context.Context, teacherID, classID int64) (bool, error) {
	const query = `INSERT INTO teacher_classes (teacher_id, class_id) VALUES ($1, $2) ON CONFLICT (teacher_id, class_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, teacherID, classID)
	if err != nil {
		return false, fmt.Errorf("assign teacher class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("assign teacher class rows: %w", err)
	}
	return affected > 0, nil
}

// ClassIDsByTeacher returns the ids of the classes a teacher is assigned to.
func (r *TeacherClassRepository) ClassIDsByTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	const query = `SELECT class_id FROM teacher_classes WHERE teacher_id = $1 ORDER BY class_id`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher class ids: %w", err)
	}
	return ids, nil
}
