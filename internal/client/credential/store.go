package credential

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/storage"
	"github.com/dmitrijs2005/carrental/internal/common"
	"github.com/dmitrijs2005/carrental/internal/dbx"
	"github.com/dmitrijs2005/carrental/internal/logging"
)

// Store persists the credential in the client_state table. It does not touch
// any in-memory session state.
type Store struct {
	db     *sql.DB
	repo   storage.StateRepository
	logger logging.Logger
	now    func() time.Time
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		repo:   storage.NewSQLiteStateRepository(db),
		logger: logger.With("component", "credential_store"),
		now:    time.Now,
	}
}

// Read returns the persisted credential, if any. A storage failure is logged
// and reported as absent.
func (s *Store) Read(ctx context.Context) (Credential, bool) {
	v, err := s.repo.Get(ctx, common.CredentialKey)
	if err != nil {
		s.logger.Warn(ctx, "credential read failed, treating as absent", "error", err)
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return Credential(v), true
}

// Write persists c together with the time it was saved.
func (s *Store) Write(ctx context.Context, c Credential) error {
	stamp := s.now().UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteStateRepository(tx)
		if err := repo.Set(ctx, common.CredentialKey, []byte(c)); err != nil {
			return err
		}
		return repo.Set(ctx, common.CredentialSavedAtKey, []byte(stamp))
	})
}

// Clear removes the persisted credential. Clearing an absent credential is
// not an error.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteStateRepository(tx)
		if err := repo.Delete(ctx, common.CredentialKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.CredentialSavedAtKey)
	})
}

// SavedAt returns when the credential was last written, if known.
func (s *Store) SavedAt(ctx context.Context) (time.Time, bool) {
	v, err := s.repo.Get(ctx, common.CredentialSavedAtKey)
	if err != nil || len(v) == 0 {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
