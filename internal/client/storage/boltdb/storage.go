package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
)

var (
	// BoltDB bucket names
	bucketTemplates = []byte("workout_templates")
	bucketInstances = []byte("workout_instances")
	bucketLogs      = []byte("exercise_logs")
	bucketQueue     = []byte("change_queue")
	bucketMetadata  = []byte("metadata")
)

// openTimeout ожидание блокировки файла, занятого другим процессом клиента
const openTimeout = 5 * time.Second

// Storage represents BoltDB storage implementation for client.
// Реализует storage.EntityStorage, storage.QueueStorage и storage.MetadataStorage.
type Storage struct {
	db     *bbolt.DB // nil в разделяемом режиме
	path   string
	shared bool

	mu     sync.Mutex
	closed bool
}

// New creates a new BoltDB storage instance that keeps the file open
// (and exclusively locked) until Close.
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	storage := &Storage{db: db, path: dbPath}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// NewShared creates a storage that opens the file only for the duration of
// each transaction, so a long-running process does not lock out the others.
func NewShared(ctx context.Context, dbPath string) (*Storage, error) {
	storage := &Storage{path: dbPath, shared: true}

	if err := storage.initBuckets(); err != nil {
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.path
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func open(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}
	return db, nil
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	return s.withDB(func(db *bbolt.DB) error { return db.Update(fn) })
}

func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	return s.withDB(func(db *bbolt.DB) error { return db.View(fn) })
}

// withDB выполняет fn над открытой БД; в разделяемом режиме файл
// открывается и закрывается вокруг каждого вызова
func (s *Storage) withDB(fn func(db *bbolt.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	if !s.shared {
		if s.db == nil {
			return storage.ErrStorageClosed
		}
		return fn(s.db)
	}

	db, err := open(s.path)
	if err != nil {
		return err
	}
	err = fn(db)
	if cerr := db.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close boltdb: %w", cerr)
	}
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTemplates, bucketInstances, bucketLogs, bucketQueue, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// entityBucket возвращает имя bucket для типа сущности
func entityBucket(entityType models.EntityType) ([]byte, error) {
	switch entityType {
	case models.EntityTypeTemplate:
		return bucketTemplates, nil
	case models.EntityTypeInstance:
		return bucketInstances, nil
	case models.EntityTypeLog:
		return bucketLogs, nil
	}
	return nil, fmt.Errorf("unknown entity type %q", entityType)
}
