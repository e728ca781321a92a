package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/policy"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

type announcementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	FindByID(ctx context.Context, id int64) (*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id int64) error
	ListForRecipients(ctx context.Context, recipientType models.RecipientType, ids []int64) ([]models.Announcement, error)
	ListByCreator(ctx context.Context, userID int64) ([]models.Announcement, error)
}

type announcementUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	ListByRoles(ctx context.Context, roles ...models.UserRole) ([]models.User, error)
	ListParentsOfClasses(ctx context.Context, classIDs []int64) ([]models.User, error)
}

type parentClassLookup interface {
	ClassIDsByParent(ctx context.Context, parentID int64) ([]int64, error)
}

type teacherClassLookup interface {
	ClassIDsByTeacher(ctx context.Context, teacherID int64) ([]int64, error)
}

// AnnouncementService implements posting, editing and reading announcements.
type AnnouncementService struct {
	repo           announcementRepository
	users          announcementUserRepository
	classes        classLookup
	children       parentClassLookup
	teacherClasses teacherClassLookup
	validator      *validator.Validate
	logger         *zap.Logger
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(
	repo announcementRepository,
	users announcementUserRepository,
	classes classLookup,
	children parentClassLookup,
	teacherClasses teacherClassLookup,
	validate *validator.Validate,
	logger *zap.Logger,
) *AnnouncementService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{
		repo:           repo,
		users:          users,
		classes:        classes,
		children:       children,
		teacherClasses: teacherClasses,
		validator:      validate,
		logger:         logger,
	}
}

// Create posts one announcement to a class or a parent.
func (s *AnnouncementService) Create(ctx context.Context, claims *models.JWTClaims, req models.CreateAnnouncementRequest) (*models.AnnouncementView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	recipient := models.Recipient{Type: req.RecipientType, ID: req.RecipientID}
	if err := s.validateRecipient(ctx, recipient); err != nil {
		return nil, err
	}

	created, err := s.insert(ctx, claims.UserID, req.Title, req.Body, req.AttachmentURL, recipient)
	if err != nil {
		return nil, err
	}
	views, err := s.hydrate(ctx, []models.Announcement{*created})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateForRecipients writes one announcement row per class and per parent.
// No recipients means no rows and an empty result.
// Every recipient is checked before the first row is written; the rows are
// not written in a single transaction.
func (s *AnnouncementService) CreateForRecipients(ctx context.Context, claims *models.JWTClaims, req models.TeacherAnnouncementRequest) ([]models.AnnouncementView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	recipients := make([]models.Recipient, 0, len(req.Classes)+len(req.Parents))
	for _, id := range req.Classes {
		recipients = append(recipients, models.ClassRecipient(id))
	}
	for _, id := range req.Parents {
		recipients = append(recipients, models.ParentRecipient(id))
	}
	if len(recipients) == 0 {
		return []models.AnnouncementView{}, nil
	}

	for _, recipient := range recipients {
		if err := s.validateRecipient(ctx, recipient); err != nil {
			return nil, err
		}
	}

	created := make([]models.Announcement, 0, len(recipients))
	for _, recipient := range recipients {
		a, err := s.insert(ctx, claims.UserID, req.Title, req.Body, req.AttachmentURL, recipient)
		if err != nil {
			if len(created) > 0 {
				s.logger.Error("announcement fan-out partially written",
					zap.Int64("user_id", claims.UserID),
					zap.Int("written", len(created)),
					zap.Int("requested", len(recipients)),
				)
			}
			return nil, err
		}
		created = append(created, *a)
	}
	return s.hydrate(ctx, created)
}

// ForParent returns announcements for the classes of the parent's children
// plus those addressed to the parent directly, newest first.
func (s *AnnouncementService) ForParent(ctx context.Context, parentID int64) ([]models.AnnouncementView, error) {
	classIDs, err := s.children.ClassIDsByParent(ctx, parentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load children classes")
	}
	byClass, err := s.repo.ListForRecipients(ctx, models.RecipientClass, classIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class announcements")
	}
	direct, err := s.repo.ListForRecipients(ctx, models.RecipientParent, []int64{parentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parent announcements")
	}
	return s.hydrate(ctx, mergeAnnouncements(byClass, direct))
}

// ForTeacher returns announcements for the teacher's assigned classes plus the
// teacher's own announcements, each at most once, newest first.
func (s *AnnouncementService) ForTeacher(ctx context.Context, teacherID int64) ([]models.AnnouncementView, error) {
	classIDs, err := s.teacherClasses.ClassIDsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher classes")
	}
	byClass, err := s.repo.ListForRecipients(ctx, models.RecipientClass, classIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class announcements")
	}
	own, err := s.repo.ListByCreator(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list own announcements")
	}
	return s.hydrate(ctx, mergeAnnouncements(byClass, own))
}

// Update edits an announcement. Only its creator may edit it.
func (s *AnnouncementService) Update(ctx context.Context, claims *models.JWTClaims, id int64, req models.UpdateAnnouncementRequest) (*models.AnnouncementView, error) {
	a, err := s.loadOwned(ctx, claims, id, "You can only edit your own announcement")
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		a.Title = *req.Title
	}
	if req.Body != nil && *req.Body != "" {
		a.Body = *req.Body
	}
	if req.AttachmentURL != nil {
		a.AttachmentURL = req.AttachmentURL
	}
	editor := claims.UserID
	a.LastUpdatedByID = &editor

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Announcement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update announcement")
	}

	views, err := s.hydrate(ctx, []models.Announcement{*a})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes an announcement. Only its creator may delete it.
func (s *AnnouncementService) Delete(ctx context.Context, claims *models.JWTClaims, id int64) error {
	if _, err := s.loadOwned(ctx, claims, id, "You can only delete your own announcement"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Announcement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete announcement")
	}
	return nil
}

// ReachableParents lists the parents the caller can address. Teachers reach
// parents of children in their assigned classes, class reps reach parents
// sharing a class with their own children, admins reach every parent.
func (s *AnnouncementService) ReachableParents(ctx context.Context, claims *models.JWTClaims) ([]models.User, error) {
	var (
		users []models.User
		err   error
	)
	switch claims.Role {
	case models.RoleAdmin:
		users, err = s.users.ListByRoles(ctx, models.RoleParent, models.RoleClassRep)
	case models.RoleTeacher:
		var classIDs []int64
		if classIDs, err = s.teacherClasses.ClassIDsByTeacher(ctx, claims.UserID); err == nil {
			users, err = s.users.ListParentsOfClasses(ctx, classIDs)
		}
	case models.RoleClassRep:
		var classIDs []int64
		if classIDs, err = s.children.ClassIDsByParent(ctx, claims.UserID); err == nil {
			users, err = s.users.ListParentsOfClasses(ctx, classIDs)
		}
	default:
		return nil, appErrors.ErrForbidden
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parents")
	}

	parents := make([]models.User, 0, len(users))
	for _, u := range users {
		if policy.IsParent(u.Role) {
			parents = append(parents, u)
		}
	}
	return parents, nil
}

func (s *AnnouncementService) validateRecipient(ctx context.Context, r models.Recipient) error {
	if !r.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "recipient_type must be class or parent")
	}
	switch r.Type {
	case models.RecipientClass:
		if _, err := s.classes.FindByID(ctx, r.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "Class not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
		}
	case models.RecipientParent:
		user, err := s.users.FindByID(ctx, r.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parent")
		}
		if user == nil || !policy.IsParent(user.Role) {
			return appErrors.Clone(appErrors.ErrValidation, "Parent not found")
		}
	}
	return nil
}

func (s *AnnouncementService) insert(ctx context.Context, userID int64, title, body string, attachment *string, r models.Recipient) (*models.Announcement, error) {
	creator := userID
	a := &models.Announcement{
		Title:           title,
		Body:            body,
		CreatedByID:     userID,
		LastUpdatedByID: &creator,
		RecipientType:   r.Type,
		RecipientID:     r.ID,
		AttachmentURL:   attachment,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}
	return a, nil
}

func (s *AnnouncementService) loadOwned(ctx context.Context, claims *models.JWTClaims, id int64, denied string) (*models.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Announcement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement")
	}
	if a.CreatedByID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, denied)
	}
	return a, nil
}

// hydrate attaches creator and last editor, loading all referenced users in one query.
func (s *AnnouncementService) hydrate(ctx context.Context, items []models.Announcement) ([]models.AnnouncementView, error) {
	views := make([]models.AnnouncementView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(items))
	add := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, a := range items {
		add(a.CreatedByID)
		if a.LastUpdatedByID != nil {
			add(*a.LastUpdatedByID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement authors")
	}
	byID := make(map[int64]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	for _, a := range items {
		view := models.AnnouncementView{Announcement: a, CreatedBy: byID[a.CreatedByID]}
		if a.LastUpdatedByID != nil {
			view.LastUpdatedBy = byID[*a.LastUpdatedByID]
		}
		views = append(views, view)
	}
	return views, nil
}

// mergeAnnouncements unions the lists, keeping the first occurrence of each id,
// and orders the result newest first.
func mergeAnnouncements(lists ...[]models.Announcement) []models.Announcement {
	seen := make(map[int64]struct{})
	merged := make([]models.Announcement, 0)
	for _, list := range lists {
		for _, a := range list {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			merged = append(merged, a)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})
	return merged
}
