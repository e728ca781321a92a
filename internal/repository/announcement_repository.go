package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/klasstra/klasstra-api/internal/models"
)

const announcementColumns = `id, title, body, created_by_id, last_updated_by_id, recipient_type, recipient_id, attachment_url, created_at, updated_at`

// AnnouncementRepository manages persistence for announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository constructs an AnnouncementRepository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create inserts an announcement and fills in its id and timestamps.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	const query = `INSERT INTO announcements (title, body, created_by_id, last_updated_by_id, recipient_type, recipient_id, attachment_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		a.Title, a.Body, a.CreatedByID, a.LastUpdatedByID, a.RecipientType, a.RecipientID, a.AttachmentURL, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

// FindByID fetches an announcement by id.
func (r *AnnouncementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	var a models.Announcement
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	return &a, nil
}

// Update persists the editable fields and bumps updated_at.
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	a.UpdatedAt = time.Now().UTC()
	const query = `UPDATE announcements SET title = $2, body = $3, attachment_url = $4, last_updated_by_id = $5, updated_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.Body, a.AttachmentURL, a.LastUpdatedByID, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an announcement permanently.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListForRecipients returns announcements addressed to any of ids of the given type, newest first.
func (r *AnnouncementRepository) ListForRecipients(ctx context.Context, recipientType models.RecipientType, ids []int64) ([]models.Announcement, error) {
	if len(ids) == 0 {
		return []models.Announcement{}, nil
	}
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE recipient_type = $1 AND recipient_id = ANY($2) ORDER BY created_at DESC, id DESC`
	var items []models.Announcement
	if err := r.db.SelectContext(ctx, &items, query, recipientType, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list announcements for recipients: %w", err)
	}
	return items, nil
}

// ListByCreator returns the announcements created by userID, newest first.
func (r *AnnouncementRepository) ListByCreator(ctx context.Context, userID int64) ([]models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE created_by_id = $1 ORDER BY created_at DESC, id DESC`
	var items []models.Announcement
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list announcements by creator: %w", err)
	}
	return items, nil
}
