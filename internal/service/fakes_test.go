package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/klasstra/klasstra-api/internal/models"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
	// children backs ListParentsOfClasses.
	children *fakeChildren
	// createErr simulates a write that loses a race on the unique index.
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int64]*models.User)}
}

func (f *fakeUsers) add(u models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	} else if u.ID > f.nextID {
		f.nextID = u.ID
	}
	stored := u
	f.byID[u.ID] = &stored
	return &stored
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) FindByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == login || u.Email == login {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := f.add(*user)
	user.ID = stored.ID
	return nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id int64, role models.UserRole, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Role = role
	u.UpdatedAt = &updatedAt
	return nil
}

func (f *fakeUsers) ListByRoles(_ context.Context, roles ...models.UserRole) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.byID {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []int64) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) ListParentsOfClasses(ctx context.Context, classIDs []int64) ([]models.User, error) {
	parentIDs := map[int64]struct{}{}
	if f.children != nil {
		for _, c := range f.children.all() {
			for _, id := range classIDs {
				if c.ClassID == id {
					parentIDs[c.ParentID] = struct{}{}
				}
			}
		}
	}
	ids := make([]int64, 0, len(parentIDs))
	for id := range parentIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return f.FindByIDs(ctx, ids)
}

type fakeClasses struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*models.Class
	teacher   map[int64][]int64
	listErr   error
	createErr error
	lists     int
}

func newFakeClasses() *fakeClasses {
	return &fakeClasses{byID: make(map[int64]*models.Class), teacher: make(map[int64][]int64)}
}

func (f *fakeClasses) add(name string) *models.Class {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := &models.Class{ID: f.nextID, Name: name}
	f.byID[c.ID] = c
	return c
}

func (f *fakeClasses) List(_ context.Context) ([]models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Class{}
	for _, c := range f.byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeClasses) FindByID(_ context.Context, id int64) (*models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClasses) ExistsByName(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClasses) Create(_ context.Context, class *models.Class) error {
	if f.createErr != nil {
		return f.createErr
	}
	created := f.add(class.Name)
	class.ID = created.ID
	return nil
}

func (f *fakeClasses) ListByTeacher(_ context.Context, teacherID int64) ([]models.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Class{}
	for _, id := range f.teacher[teacherID] {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

type fakeTeacherClasses struct {
	mu    sync.Mutex
	pairs map[[2]int64]struct{}
}

func newFakeTeacherClasses() *fakeTeacherClasses {
	return &fakeTeacherClasses{pairs: make(map[[2]int64]struct{})}
}

func (f *fakeTeacherClasses) Assign(_ context.Context, teacherID, classID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{teacherID, classID}
	if _, ok := f.pairs[key]; ok {
		return false, nil
	}
	f.pairs[key] = struct{}{}
	return true, nil
}

func (f *fakeTeacherClasses) ClassIDsByTeacher(_ context.Context, teacherID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for key := range f.pairs {
		if key[0] == teacherID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeChildren struct {
	mu       sync.Mutex
	nextID   int64
	children []models.Child
}

func (f *fakeChildren) all() []models.Child {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Child(nil), f.children...)
}

func (f *fakeChildren) Create(_ context.Context, child *models.Child) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	child.ID = f.nextID
	f.children = append(f.children, *child)
	return nil
}

func (f *fakeChildren) ListByParent(_ context.Context, parentID int64) ([]models.Child, error) {
	var out []models.Child
	for _, c := range f.all() {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChildren) ClassIDsByParent(_ context.Context, parentID int64) ([]int64, error) {
	seen := map[int64]struct{}{}
	var ids []int64
	for _, c := range f.all() {
		if c.ParentID != parentID {
			continue
		}
		if _, ok := seen[c.ClassID]; !ok {
			seen[c.ClassID] = struct{}{}
			ids = append(ids, c.ClassID)
		}
	}
	return ids, nil
}

type fakeAnnouncements struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*models.Announcement
	clock     time.Time
	createErr error
	creates   int
}

func newFakeAnnouncements() *fakeAnnouncements {
	return &fakeAnnouncements{byID: make(map[int64]*models.Announcement), clock: time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)}
}

func (f *fakeAnnouncements) Create(_ context.Context, a *models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	a.ID = f.nextID
	a.CreatedAt = f.clock
	a.UpdatedAt = f.clock
	stored := *a
	f.byID[a.ID] = &stored
	return nil
}

func (f *fakeAnnouncements) FindByID(_ context.Context, id int64) (*models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAnnouncements) Update(_ context.Context, a *models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[a.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *a
	f.byID[a.ID] = &stored
	return nil
}

func (f *fakeAnnouncements) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAnnouncements) ListForRecipients(_ context.Context, recipientType models.RecipientType, ids []int64) ([]models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Announcement{}
	for _, a := range f.byID {
		if a.RecipientType != recipientType {
			continue
		}
		for _, id := range ids {
			if a.RecipientID == id {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAnnouncements) ListByCreator(_ context.Context, userID int64) ([]models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Announcement{}
	for _, a := range f.byID {
		if a.CreatedByID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeAudit struct {
	mu        sync.Mutex
	entries   []models.AuditLog
	createErr error
	lastLimit int
}

func (f *fakeAudit) Create(_ context.Context, entry *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAudit) List(_ context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = filter.Limit
	return append([]models.AuditLog(nil), f.entries...), nil
}

func claimsFor(u *models.User) *models.JWTClaims {
	c := &models.JWTClaims{UserID: u.ID, Role: u.Role}
	c.Subject = u.Username
	return c
}
