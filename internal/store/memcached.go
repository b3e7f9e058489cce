package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/kjstillabower/vehicle-fleet-service/internal/models"
)

const (
	keyPrefix = "vehicle:"
	indexKey  = "vehicle:index"
)

// MemcachedStore implements Store on memcached. Each record is one JSON item
// under vehicle:{id}; a JSON id list under vehicle:index backs List. The
// index update is not atomic with the record write, so a crash between the
// two can leave a stored record out of List until re-put.
type MemcachedStore struct {
	client *memcache.Client
	mu     sync.Mutex // serializes index read-modify-write
}

// NewMemcachedStore creates a MemcachedStore. addrs is a comma-separated list
// (e.g. "localhost:11211" or "host1:11211,host2:11211"). timeout and
// maxIdleConns configure the client; both use package defaults if zero.
func NewMemcachedStore(addrs string, timeout time.Duration, maxIdleConns int) (*MemcachedStore, error) {
	servers := parseAddrs(addrs)
	if len(servers) == 0 {
		servers = []string{"localhost:11211"}
	}
	client := memcache.New(servers...)
	if timeout > 0 {
		client.Timeout = timeout
	}
	if maxIdleConns > 0 {
		client.MaxIdleConns = maxIdleConns
	}
	return &MemcachedStore{client: client}, nil
}

func parseAddrs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (s *MemcachedStore) key(id string) string {
	return keyPrefix + id
}

// Get implements Store.Get. Returns false, nil on a missing id.
func (s *MemcachedStore) Get(ctx context.Context, id string) (models.VehicleRecord, bool, error) {
	if ctx.Err() != nil {
		return models.VehicleRecord{}, false, ctx.Err()
	}
	item, err := s.client.Get(s.key(id))
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return models.VehicleRecord{}, false, nil
		}
		return models.VehicleRecord{}, false, err
	}
	var rec models.VehicleRecord
	if err := json.Unmarshal(item.Value, &rec); err != nil {
		return models.VehicleRecord{}, false, err
	}
	return rec, true, nil
}

// Put implements Store.Put. Records are stored without expiration and the id
// is appended to the index on first write.
func (s *MemcachedStore) Put(ctx context.Context, rec models.VehicleRecord) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(&memcache.Item{Key: s.key(rec.ID), Value: raw}); err != nil {
		return err
	}
	return s.appendIndex(rec.ID)
}

// List implements Store.List using the id index.
func (s *MemcachedStore) List(ctx context.Context) ([]models.VehicleRecord, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	ids, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	out := make([]models.VehicleRecord, 0, len(ids))
	for _, id := range ids {
		rec, ok, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemcachedStore) readIndex() ([]string, error) {
	item, err := s.client.Get(indexKey)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(item.Value, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *MemcachedStore) appendIndex(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.readIndex()
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.client.Set(&memcache.Item{Key: indexKey, Value: raw})
}

// Ping checks if memcached is reachable. Used for health checks.
func (s *MemcachedStore) Ping() error {
	return s.client.Ping()
}

// Close closes the memcached client connections. Call during shutdown.
func (s *MemcachedStore) Close() error {
	return s.client.Close()
}
