// Package fallback provides the local bbolt-backed cache used when the
// remote database is unreachable. It mirrors the shape of a browser
// key-value store: one bucket per entity type, the whole collection
// JSON-encoded under a single key. Collections written here are already
// in canonical shape; readers never re-normalize them.
package fallback

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

// Bucket names, one per entity type.
var (
	BucketProjects    = []byte("projects")
	BucketHome        = []byte("home")
	BucketMessages    = []byte("messages")
	BucketContactInfo = []byte("contact_info")
)

// collectionKey is the single key each bucket stores its collection under.
var collectionKey = []byte("collection")

// dirtyKey flags a bucket as holding writes the database never saw.
var dirtyKey = []byte("dirty")

// Cache is the local fallback store.
type Cache struct {
	db *bbolt.DB
}

// Open opens (or creates) the fallback cache file and ensures all entity
// buckets exist.
func Open(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("fallback open: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{BucketProjects, BucketHome, BucketMessages, BucketContactInfo} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("fallback init: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database file.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Save replaces the stored collection for the given entity bucket.
func Save[T any](c *Cache, bucket []byte, collection []T) error {
	if collection == nil {
		collection = []T{}
	}
	payload, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("fallback marshal %s: %w", bucket, err)
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put(collectionKey, payload)
	})
	if err != nil {
		return fmt.Errorf("fallback save %s: %w", bucket, err)
	}
	return nil
}

// Load returns the stored collection for the given entity bucket, or an
// empty slice if nothing has been cached yet.
func Load[T any](c *Cache, bucket []byte) ([]T, error) {
	var payload []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucket).Get(collectionKey); v != nil {
			payload = make([]byte, len(v))
			copy(payload, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fallback load %s: %w", bucket, err)
	}

	if payload == nil {
		return []T{}, nil
	}

	var collection []T
	if err := json.Unmarshal(payload, &collection); err != nil {
		return nil, fmt.Errorf("fallback unmarshal %s: %w", bucket, err)
	}
	if collection == nil {
		collection = []T{}
	}
	return collection, nil
}

// MarkDirty flags a bucket as holding local-only writes. While a bucket
// is dirty, successful remote reads must not mirror over it, or the
// pending records would be lost before they can be migrated.
func (c *Cache) MarkDirty(bucket []byte) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put(dirtyKey, []byte{1})
	})
	if err != nil {
		return fmt.Errorf("fallback mark dirty %s: %w", bucket, err)
	}
	return nil
}

// ClearDirty removes the local-writes flag, re-enabling mirroring.
func (c *Cache) ClearDirty(bucket []byte) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Delete(dirtyKey)
	})
	if err != nil {
		return fmt.Errorf("fallback clear dirty %s: %w", bucket, err)
	}
	return nil
}

// Dirty reports whether the bucket holds writes the database never saw.
func (c *Cache) Dirty(bucket []byte) (bool, error) {
	var dirty bool
	err := c.db.View(func(tx *bbolt.Tx) error {
		dirty = tx.Bucket(bucket).Get(dirtyKey) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("fallback dirty check %s: %w", bucket, err)
	}
	return dirty, nil
}

// SaveOne stores a single record as a one-element collection. Used for
// the singleton entities (home content, contact info).
func SaveOne[T any](c *Cache, bucket []byte, record T) error {
	return Save(c, bucket, []T{record})
}

// LoadOne returns the singleton record from a bucket, or (zero, false)
// if nothing is cached.
func LoadOne[T any](c *Cache, bucket []byte) (T, bool, error) {
	var zero T
	collection, err := Load[T](c, bucket)
	if err != nil || len(collection) == 0 {
		return zero, false, err
	}
	return collection[0], true, nil
}
