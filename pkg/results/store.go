package results

import (
	"errors"
)

var ErrResultsNotFound = errors.New("results: not found")

// Store archives the results of read sessions, keyed by session ID.
// Reading the same log twice upserts the same entries.
type Store interface {
	UpsertResults(results *SessionResults) error
	FindResultsByID(id string) (*SessionResults, error)
	ListResults() ([]*SessionResults, error)
	DeleteResults(id string) error
	Close() error
}
