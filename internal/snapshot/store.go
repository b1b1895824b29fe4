// Package snapshot records search results in a bbolt file so a run can be
// replayed later without tracker access.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/Mr-Slippery/jirascope/internal/jira"
	"github.com/Mr-Slippery/jirascope/internal/model"
)

const bucketName = "searches"

// Store holds recorded search pages keyed by query and page window.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a snapshot file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

func pageKey(jql string, startAt, maxResults int) []byte {
	return []byte(fmt.Sprintf("%s|%d|%d", jql, startAt, maxResults))
}

// Put records one search page.
func (s *Store) Put(jql string, startAt, maxResults int, issues []model.Issue) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		data, err := json.Marshal(issues)
		if err != nil {
			return err
		}
		return bucket.Put(pageKey(jql, startAt, maxResults), data)
	})
}

// Get retrieves one recorded page. The second return tells whether the
// page was recorded at all.
func (s *Store) Get(jql string, startAt, maxResults int) ([]model.Issue, bool, error) {
	var issues []model.Issue
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return nil
		}
		data := bucket.Get(pageKey(jql, startAt, maxResults))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &issues)
	})
	return issues, found, err
}

// Search serves recorded pages, satisfying the same query boundary as
// the live client. A miss means the snapshot does not cover the query.
func (s *Store) Search(ctx context.Context, jql string, startAt, maxResults int) ([]model.Issue, error) {
	issues, found, err := s.Get(jql, startAt, maxResults)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("snapshot has no results for %q at offset %d", jql, startAt)
	}
	return issues, nil
}

// Recorder wraps a live searcher and writes every page through to a store.
type Recorder struct {
	Searcher jira.Searcher
	Store    *Store
}

// Search passes the query through and records the result page.
func (r *Recorder) Search(ctx context.Context, jql string, startAt, maxResults int) ([]model.Issue, error) {
	issues, err := r.Searcher.Search(ctx, jql, startAt, maxResults)
	if err != nil {
		return nil, err
	}
	if err := r.Store.Put(jql, startAt, maxResults, issues); err != nil {
		return nil, fmt.Errorf("record snapshot: %w", err)
	}
	return issues, nil
}
