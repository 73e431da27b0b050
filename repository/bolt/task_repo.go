package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	boltdb "go.etcd.io/bbolt"

	"github.com/simpletask/backend/domain"
	"github.com/simpletask/backend/repository"
)

var bucketTasks = []byte("tasks")

// record is the stored form of a task. Seq is the bucket sequence at creation
// and breaks CreatedAt ties in creation order.
type record struct {
	domain.Task
	Seq uint64 `json:"seq"`
}

// Store is an embedded, file-backed TaskRepository on top of BoltDB. It serves
// development and test setups where a Postgres instance is unavailable;
// ordering and limits are applied in process.
type Store struct {
	db *boltdb.DB
}

// Open initializes the Bolt file and ensures the tasks bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := boltdb.Open(path, 0o600, &boltdb.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *boltdb.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTasks)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Ping verifies the database file is still readable.
func (s *Store) Ping() error {
	return s.db.View(func(*boltdb.Tx) error { return nil })
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []record
	err := s.db.View(func(tx *boltdb.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(_, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	oldestFirst := filter.Sort == repository.SortOldestFirst
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if oldestFirst {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if oldestFirst {
			return a.Seq < b.Seq
		}
		return a.Seq > b.Seq
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, rec.Task)
	}
	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := s.db.View(func(tx *boltdb.Tx) error {
		rec, err := getRecord(tx, id)
		if err != nil {
			return err
		}
		task = &rec.Task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) Create(ctx context.Context, input repository.NewTask) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := record{
		Task: domain.Task{
			ID:          uuid.NewString(),
			Title:       input.Title,
			Description: input.Description,
			IsComplete:  input.IsComplete,
			CreatedAt:   time.Now().UTC(),
		},
	}

	err := s.db.Update(func(tx *boltdb.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		rec.Seq = seq
		return putRecord(bucket, rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec.Task, nil
}

func (s *Store) Update(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := s.db.Update(func(tx *boltdb.Tx) error {
		rec, err := getRecord(tx, id)
		if err != nil {
			return err
		}
		if patch.Title != nil {
			rec.Title = *patch.Title
		}
		if patch.Description != nil {
			rec.Description = patch.Description
		}
		if patch.IsComplete != nil {
			rec.IsComplete = *patch.IsComplete
		}
		if err := putRecord(tx.Bucket(bucketTasks), *rec); err != nil {
			return err
		}
		task = &rec.Task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *boltdb.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		if bucket.Get([]byte(id)) == nil {
			return domain.ErrTaskNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

func getRecord(tx *boltdb.Tx, id string) (*record, error) {
	raw := tx.Bucket(bucketTasks).Get([]byte(id))
	if raw == nil {
		return nil, domain.ErrTaskNotFound
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func putRecord(bucket *boltdb.Bucket, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return bucket.Put([]byte(rec.ID), payload)
}
