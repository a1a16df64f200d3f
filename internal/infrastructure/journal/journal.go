package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/lifedesk/backend/domain"
)

// Store wraps BoltDB to persist the assistant action journal: one record
// per processed message, keyed per user in time order.
type Store struct {
	db *bolt.DB
}

const usersBucket = "turns"

// Open initializes the BoltDB file and ensures the root bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(usersBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Append records one processed turn in the user's bucket.
func (s *Store) Append(record domain.TurnRecord) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%020d_%s", record.CreatedAt.UnixNano(), record.ID)
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.Bucket([]byte(usersBucket)).CreateBucketIfNotExists([]byte(record.UserID))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), payload)
	})
}

// Recent returns up to limit records for a user, newest first.
func (s *Store) Recent(userID string, limit int) ([]domain.TurnRecord, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 20
	}

	var records []domain.TurnRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(usersBucket)).Bucket([]byte(userID))
		if bucket == nil {
			return nil
		}
		c := bucket.Cursor()
		for k, v := c.Last(); k != nil && len(records) < limit; k, v = c.Prev() {
			var record domain.TurnRecord
			if err := json.Unmarshal(v, &record); err != nil {
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

// Cleanup removes records older than the provided timestamp across all
// users and reports how many were deleted.
func (s *Store) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(usersBucket))
		return root.ForEachBucket(func(name []byte) error {
			c := root.Bucket(name).Cursor()
			for k, v := c.First(); k != nil; k, v = c.Next() {
				var record domain.TurnRecord
				if err := json.Unmarshal(v, &record); err != nil {
					continue
				}
				if record.CreatedAt.Before(olderThan) {
					if err := c.Delete(); err != nil {
						return err
					}
					removed++
				}
			}
			return nil
		})
	})
	return removed, err
}

// Size returns the total number of journaled records.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(usersBucket))
		return root.ForEachBucket(func(name []byte) error {
			count += root.Bucket(name).Stats().KeyN
			return nil
		})
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
