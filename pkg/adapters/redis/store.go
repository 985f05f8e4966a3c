// Package redis provides a Redis-backed RecordStore.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/picket/pkg/ports"
	"github.com/aretw0/picket/pkg/record"
)

// envelope is the wire form of a record. A plain JSON object would lose the
// field order on the way back, so fields and values travel as parallel
// slices.
type envelope struct {
	Fields []string `json:"fields"`
	Values []any    `json:"values"`
}

// Store implements ports.RecordStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "picket:record:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the record and adds it to the ZSET index. The index score is
// the expiration time, which lets List prune lazily.
func (s *Store) Save(ctx context.Context, id string, rec *record.Mapping) error {
	data, err := json.Marshal(envelope{Fields: rec.Fields(), Values: rec.Values()})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively never
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(id), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save record to redis: %w", err)
	}
	return nil
}

// Load retrieves a record by ID.
func (s *Store) Load(ctx context.Context, id string) (*record.Mapping, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, ports.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get record from redis: %w", err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if len(env.Fields) != len(env.Values) {
		return nil, fmt.Errorf("corrupt record %q: %d fields, %d values", id, len(env.Fields), len(env.Values))
	}

	values := make(map[string]any, len(env.Fields))
	for i, f := range env.Fields {
		values[f] = env.Values[i]
	}
	return record.NewMapping(env.Fields, values), nil
}

// Delete removes a record and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the stored record IDs, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("prune expired records: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
