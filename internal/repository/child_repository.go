package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/klasstra/klasstra-api/internal/models"
)

// ChildRepository persists children registered by parents.
type ChildRepository struct {
	db *sqlx.DB
}

// NewChildRepository constructs a ChildRepository.
func NewChildRepository(db *sqlx.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

type childRow struct {
	models.Child
	ClassName      string    `db:"class_name"`
	ClassCreatedAt time.Time `db:"class_created_at"`
	ClassUpdatedAt time.Time `db:"class_updated_at"`
}

// Create inserts a child and fills in its id.
func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	now := time.Now().UTC()
	child.CreatedAt = now
	child.UpdatedAt = now
	const query = `INSERT INTO children (parent_id, first_name, last_name, class_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		child.ParentID, child.FirstName, child.LastName, child.ClassID, child.CreatedAt, child.UpdatedAt,
	).Scan(&child.ID); err != nil {
		return fmt.Errorf("create child: %w", err)
	}
	return nil
}

// ListByParent returns a parent's children with their class attached.
func (r *ChildRepository) ListByParent(ctx context.Context, parentID int64) ([]models.Child, error) {
	const query = `SELECT ch.id, ch.parent_id, ch.first_name, ch.last_name, ch.class_id, ch.created_at, ch.updated_at,
	cl.name AS class_name, cl.created_at AS class_created_at, cl.updated_at AS class_updated_at
FROM children ch
JOIN classes cl ON cl.id = ch.class_id
WHERE ch.parent_id = $1
ORDER BY ch.id`
	var rows []childRow
	if err := r.db.SelectContext(ctx, &rows, query, parentID); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	children := make([]models.Child, 0, len(rows))
	for _, row := range rows {
		child := row.Child
		child.Class = &models.Class{
			ID:        row.ClassID,
			Name:      row.ClassName,
			CreatedAt: row.ClassCreatedAt,
			UpdatedAt: row.ClassUpdatedAt,
		}
		children = append(children, child)
	}
	return children, nil
}

// ClassIDsByParent returns the distinct classes of a parent's children.
func (r *ChildRepository) ClassIDsByParent(ctx context.Context, parentID int64) ([]int64, error) {
	const query = `SELECT DISTINCT class_id FROM children WHERE parent_id = $1 ORDER BY class_id`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, parentID); err != nil {
		return nil, fmt.Errorf("list child class ids: %w", err)
	}
	return ids, nil
}
