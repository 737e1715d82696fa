package postgres

import (
	"context"
	"database/sql"

	"jobboard/internal/dbx"
	"jobboard/internal/storage"
)

// Store implements storage.Store on top of a *sql.DB opened through the pgx stdlib driver.
type Store struct {
	db *sql.DB
	repos
}

type repos struct {
	users         *UserRepo
	jobs          *JobRepo
	applications  *ApplicationRepo
	notifications *NotificationRepo
}

func newRepos(db dbx.DBTX) repos {
	return repos{
		users:         NewUserRepo(db),
		jobs:          NewJobRepo(db),
		applications:  NewApplicationRepo(db),
		notifications: NewNotificationRepo(db),
	}
}

func (r repos) Users() storage.UserRepository                 { return r.users }
func (r repos) Jobs() storage.JobRepository                   { return r.jobs }
func (r repos) Applications() storage.ApplicationRepository   { return r.applications }
func (r repos) Notifications() storage.NotificationRepository { return r.notifications }

// NewStore creates a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: newRepos(db)}
}

var _ storage.Store = (*Store)(nil)

// WithTx runs fn with repositories bound to a single read-committed transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, r storage.Repositories) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, newRepos(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
