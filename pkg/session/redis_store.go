package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/wayfinder/pkg/history"
)

// RedisStore keeps JSON encoded snapshots in redis with a per-key TTL.
type RedisStore struct {
	client redis.UniversalClient
	opts   *options
}

func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RedisStore{client: client, opts: o}
}

func (s *RedisStore) Save(ctx context.Context, key string, snap history.Snapshot) error {
	if key == "" {
		return ErrInvalidKey
	}
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.opts.prefix+key, data, s.opts.ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (history.Snapshot, error) {
	data, err := s.client.Get(ctx, s.opts.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return history.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return history.Snapshot{}, errors.Join(ErrStoreFailed, err)
	}
	return decodeSnapshot(data)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.opts.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func encodeSnapshot(snap history.Snapshot) ([]byte, error) {
	if err := snap.Validate(); err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (history.Snapshot, error) {
	var snap history.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return history.Snapshot{}, errors.Join(ErrDecode, err)
	}
	if err := snap.Validate(); err != nil {
		return history.Snapshot{}, errors.Join(ErrDecode, err)
	}
	return snap, nil
}

// Ping reports whether the redis server answers.
func (s *RedisStore) Ping(ctx context.Context) error {
	return Healthcheck(s.client)(ctx)
}
