package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
)

const table = "sessions"

// Store keeps contact sessions in memory. Nothing survives a restart.
type Store struct {
	db  *memdb.MemDB
	now func() time.Time
}

// New creates an empty store.
func New() (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: {
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"state": {
						Name:    "state",
						Unique:  false,
						Indexer: &memdb.IntFieldIndex{Field: "State"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("session schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like something NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session for id and whether it exists.
func (s *Store) Get(id string) (contact.Session, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, "id", id)
	if err != nil {
		return contact.Session{}, false, err
	}
	if raw == nil {
		return contact.Session{}, false, nil
	}
	return *raw.(*contact.Session), true, nil
}

// Update runs fn inside a write transaction, so concurrent updates for the
// same id are serialized. If fn fails nothing is written and the session as
// it was before is returned along with the error.
func (s *Store) Update(id string, fn func(contact.Session) (contact.Session, error)) (contact.Session, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	cur := contact.Session{ID: id, UpdatedAt: s.now()}
	raw, err := txn.First(table, "id", id)
	if err != nil {
		return cur, err
	}
	if raw != nil {
		cur = *raw.(*contact.Session)
	}

	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	next.ID = id
	if err := txn.Insert(table, &next); err != nil {
		return cur, err
	}
	txn.Commit()
	return next, nil
}

// Delete drops the session for id, if any.
func (s *Store) Delete(id string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(table, "id", id); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// CountByState reports how many sessions are in each state.
func (s *Store) CountByState() (map[contact.State]int, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	out := make(map[contact.State]int)
	for _, st := range []contact.State{contact.StateIdle, contact.StateSubmitting, contact.StateSucceeded, contact.StateFailed} {
		it, err := txn.Get(table, "state", st)
		if err != nil {
			return nil, err
		}
		for obj := it.Next(); obj != nil; obj = it.Next() {
			out[st]++
		}
	}
	return out, nil
}

// Sweep deletes sessions untouched since cutoff. Sessions with a request in
// flight are kept so the attempt can still record its outcome.
func (s *Store) Sweep(cutoff time.Time) (int, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(table, "id")
	if err != nil {
		return 0, err
	}

	var stale []*contact.Session
	for obj := it.Next(); obj != nil; obj = it.Next() {
		sess := obj.(*contact.Session)
		if sess.State != contact.StateSubmitting && sess.UpdatedAt.Before(cutoff) {
			stale = append(stale, sess)
		}
	}
	for _, sess := range stale {
		if err := txn.Delete(table, sess); err != nil {
			return 0, err
		}
	}
	txn.Commit()
	return len(stale), nil
}
