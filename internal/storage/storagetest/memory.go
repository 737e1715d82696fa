// Package storagetest provides an in-memory storage.Store for tests. It
// enforces the same unique constraints as the Postgres schema and gives
// WithTx all-or-nothing semantics.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/models"
	"jobboard/internal/storage"
)

type state struct {
	seq           int64
	clock         time.Time
	users         map[int64]models.User
	jobs          map[int64]models.Job
	applications  map[int64]models.Application
	notifications map[int64]models.Notification
}

func (s *state) clone() *state {
	c := &state{
		seq:           s.seq,
		clock:         s.clock,
		users:         make(map[int64]models.User, len(s.users)),
		jobs:          make(map[int64]models.Job, len(s.jobs)),
		applications:  make(map[int64]models.Application, len(s.applications)),
		notifications: make(map[int64]models.Notification, len(s.notifications)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	return c
}

// next returns a fresh id and a timestamp strictly later than the previous one.
func (s *state) next() (int64, time.Time) {
	s.seq++
	s.clock = s.clock.Add(time.Second)
	return s.seq, s.clock
}

func (s *state) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// Store is an in-memory storage.Store.
type Store struct {
	mu       sync.Mutex
	data     *state
	failures map[string]error
}

var _ storage.Store = (*Store)(nil)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		data: &state{
			clock:         time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			users:         map[int64]models.User{},
			jobs:          map[int64]models.Job{},
			applications:  map[int64]models.Application{},
			notifications: map[int64]models.Notification{},
		},
		failures: map[string]error{},
	}
}

// FailOn makes every call of op (e.g. "applications.create") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

type accessor func() (*state, func())

func (s *Store) direct() accessor {
	return func() (*state, func()) {
		s.mu.Lock()
		return s.data, s.mu.Unlock
	}
}

func (s *Store) repos(get accessor) *repos {
	return &repos{store: s, get: get}
}

func (s *Store) Users() storage.UserRepository                 { return s.repos(s.direct()).Users() }
func (s *Store) Jobs() storage.JobRepository                   { return s.repos(s.direct()).Jobs() }
func (s *Store) Applications() storage.ApplicationRepository   { return s.repos(s.direct()).Applications() }
func (s *Store) Notifications() storage.NotificationRepository { return s.repos(s.direct()).Notifications() }

// WithTx runs fn against a private copy of the data that replaces the
// committed data only when fn succeeds. Transactions are serialized.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, r storage.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	get := func() (*state, func()) { return tx, func() {} }
	if err := fn(ctx, s.repos(get)); err != nil {
		return err
	}
	s.data = tx
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Snapshot counters used by tests.

func (s *Store) CountApplications() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.applications)
}

func (s *Store) CountNotifications(applicationID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.data.notifications {
		if v.ApplicationID == applicationID {
			n++
		}
	}
	return n
}

// NotificationsFor returns every notification of userID, oldest first.
func (s *Store) NotificationsFor(userID int64) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, v := range s.data.notifications {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type repos struct {
	store *Store
	get   accessor
}

func (r *repos) Users() storage.UserRepository                 { return &userRepo{r} }
func (r *repos) Jobs() storage.JobRepository                   { return &jobRepo{r} }
func (r *repos) Applications() storage.ApplicationRepository   { return &applicationRepo{r} }
func (r *repos) Notifications() storage.NotificationRepository { return &notificationRepo{r} }

func conflict(constraint string) error {
	return &storage.ConflictError{Constraint: constraint, Err: errors.New("duplicate key value violates unique constraint")}
}

// ---- users

type userRepo struct{ *repos }

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	st, done := r.get()
	defer done()
	if err := r.store.failure("users.create"); err != nil {
		return nil, err
	}
	for _, u := range st.users {
		if u.Username == user.Username {
			return nil, conflict("users_username_key")
		}
		if strings.EqualFold(u.Email, user.Email) {
			return nil, conflict("users_email_key")
		}
	}
	u := *user
	u.ID, u.CreatedAt = st.next()
	u.UpdatedAt = u.CreatedAt
	st.users[u.ID] = u
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	st, done := r.get()
	defer done()
	u, ok := st.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	st, done := r.get()
	defer done()
	for _, u := range st.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	st, done := r.get()
	defer done()
	for _, u := range st.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	st, done := r.get()
	defer done()
	u, ok := st.users[user.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for _, other := range st.users {
		if other.ID != user.ID && strings.EqualFold(other.Email, user.Email) {
			return nil, conflict("users_email_key")
		}
	}
	u.Email, u.FirstName, u.LastName, u.Phone, u.LinkedIn = user.Email, user.FirstName, user.LastName, user.Phone, user.LinkedIn
	u.UpdatedAt = st.tick()
	st.users[u.ID] = u
	return &u, nil
}

// ---- jobs

type jobRepo struct{ *repos }

func (r *jobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	st, done := r.get()
	defer done()
	if err := r.store.failure("jobs.create"); err != nil {
		return nil, err
	}
	for _, j := range st.jobs {
		if j.Slug == job.Slug {
			return nil, conflict("jobs_slug_key")
		}
	}
	j := *job
	j.ID, j.PostedDate = st.next()
	j.UpdatedDate = j.PostedDate
	st.jobs[j.ID] = j
	return &j, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	st, done := r.get()
	defer done()
	j, ok := st.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &j, nil
}

func (r *jobRepo) GetActiveByID(ctx context.Context, id int64) (*models.Job, error) {
	j, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !j.IsActive {
		return nil, storage.ErrNotFound
	}
	return j, nil
}

func (r *jobRepo) GetByTitleAndCompany(ctx context.Context, title, companyName string) (*models.Job, error) {
	jobs, _ := r.ListAll(ctx)
	var found *models.Job
	for i := range jobs {
		if jobs[i].Title == title && jobs[i].CompanyName == companyName {
			if found == nil || jobs[i].ID < found.ID {
				found = &jobs[i]
			}
		}
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}
	return found, nil
}

func (r *jobRepo) ListActive(ctx context.Context) ([]models.Job, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	active := []models.Job{}
	for _, j := range all {
		if j.IsActive {
			active = append(active, j)
		}
	}
	return active, nil
}

func (r *jobRepo) ListAll(ctx context.Context) ([]models.Job, error) {
	st, done := r.get()
	defer done()
	jobs := make([]models.Job, 0, len(st.jobs))
	for _, j := range st.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool {
		if !jobs[i].PostedDate.Equal(jobs[k].PostedDate) {
			return jobs[i].PostedDate.After(jobs[k].PostedDate)
		}
		return jobs[i].ID > jobs[k].ID
	})
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	st, done := r.get()
	defer done()
	existing, ok := st.jobs[job.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	j := *job
	j.Slug = existing.Slug
	j.PostedDate = existing.PostedDate
	j.UpdatedDate = st.tick()
	st.jobs[j.ID] = j
	return &j, nil
}

// ---- applications

type applicationRepo struct{ *repos }

func withJob(st *state, a models.Application) *models.Application {
	if j, ok := st.jobs[a.JobID]; ok {
		a.JobTitle = j.Title
		a.JobCompanyName = j.CompanyName
	}
	return &a
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	st, done := r.get()
	defer done()
	if err := r.store.failure("applications.create"); err != nil {
		return nil, err
	}
	if _, ok := st.jobs[app.JobID]; !ok {
		return nil, fmt.Errorf("failed to create application: invalid reference: %w", storage.ErrConflict)
	}
	if _, ok := st.users[app.UserID]; !ok {
		return nil, fmt.Errorf("failed to create application: invalid reference: %w", storage.ErrConflict)
	}
	for _, a := range st.applications {
		if a.UserID == app.UserID && a.JobID == app.JobID {
			return nil, conflict("applications_user_id_job_id_key")
		}
	}
	a := *app
	if a.Status == "" {
		a.Status = models.ApplicationStatusNew
	}
	a.ID, a.AppliedDate = st.next()
	a.UpdatedDate = a.AppliedDate
	a.JobTitle, a.JobCompanyName = "", ""
	st.applications[a.ID] = a
	return withJob(st, a), nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	st, done := r.get()
	defer done()
	a, ok := st.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return withJob(st, a), nil
}

func (r *applicationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Application, error) {
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) ExistsForUserAndJob(ctx context.Context, userID, jobID int64) (bool, error) {
	st, done := r.get()
	defer done()
	for _, a := range st.applications {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) List(ctx context.Context, filter storage.ApplicationFilter) ([]models.Application, error) {
	st, done := r.get()
	defer done()
	search := strings.ToLower(filter.Search)
	apps := []models.Application{}
	for _, a := range st.applications {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(a.FullName), search) {
			continue
		}
		apps = append(apps, *withJob(st, a))
	}
	sort.Slice(apps, func(i, k int) bool {
		if !apps[i].AppliedDate.Equal(apps[k].AppliedDate) {
			return apps[i].AppliedDate.After(apps[k].AppliedDate)
		}
		return apps[i].ID > apps[k].ID
	})
	return apps, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	st, done := r.get()
	defer done()
	a, ok := st.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a.Status = status
	a.UpdatedDate = st.tick()
	st.applications[id] = a
	return withJob(st, a), nil
}

// ---- notifications

type notificationRepo struct{ *repos }

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	st, done := r.get()
	defer done()
	if err := r.store.failure("notifications.create"); err != nil {
		return nil, err
	}
	if _, ok := st.applications[n.ApplicationID]; !ok {
		return nil, fmt.Errorf("failed to create notification: invalid reference: %w", storage.ErrConflict)
	}
	c := *n
	c.ID, c.CreatedAt = st.next()
	c.IsRead = false
	st.notifications[c.ID] = c
	return &c, nil
}

func (r *notificationRepo) unread(st *state, userID int64) []models.Notification {
	list := []models.Notification{}
	for _, n := range st.notifications {
		if n.UserID == userID && !n.IsRead {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, k int) bool {
		if !list[i].CreatedAt.Equal(list[k].CreatedAt) {
			return list[i].CreatedAt.After(list[k].CreatedAt)
		}
		return list[i].ID > list[k].ID
	})
	return list
}

func (r *notificationRepo) ListUnread(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	st, done := r.get()
	defer done()
	list := r.unread(st, userID)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	st, done := r.get()
	defer done()
	return len(r.unread(st, userID)), nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	st, done := r.get()
	defer done()
	n, ok := st.notifications[id]
	if !ok || n.UserID != userID {
		return storage.ErrNotFound
	}
	n.IsRead = true
	st.notifications[id] = n
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	st, done := r.get()
	defer done()
	var changed int64
	for id, n := range st.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			st.notifications[id] = n
			changed++
		}
	}
	return changed, nil
}
