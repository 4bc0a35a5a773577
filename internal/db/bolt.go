package db

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("kinfolk")

// Bolt stores keys in a single BoltDB bucket
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens the BoltDB file and ensures the bucket exists
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string) (string, bool, error) {
	if b == nil || b.db == nil {
		return "", false, bolt.ErrDatabaseNotOpen
	}
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	return value, ok, err
}

func (b *Bolt) Set(key, value string) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Delete(key string) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
}

// Close closes the Bolt database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
