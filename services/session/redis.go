package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// maxUpdateRetries bounds optimistic-lock retries when writers race on one key.
const maxUpdateRetries = 5

// RedisStore keeps sessions as JSON documents with a sliding TTL. With a
// Sealer the documents are encrypted at rest.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	sealer *Sealer
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// WithSealer encrypts every document written from now on.
func (s *RedisStore) WithSealer(sealer *Sealer) *RedisStore {
	s.sealer = sealer
	return s
}

func (s *RedisStore) Create(ctx context.Context, st State) error {
	b, err := s.encode(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+st.ID, b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (State, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if err == redis.Nil {
		return State{}, ErrSessionNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	return s.decode(data)
}

// Update uses WATCH/MULTI so concurrent writers of one session never lose an
// update; a conflicting write makes the transaction retry with fresh state.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*State) error) (State, error) {
	key := sessionPrefix + id
	var result State

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		st, err := s.decode(data)
		if err != nil {
			return err
		}
		if err := fn(&st); err != nil {
			return err
		}
		st.UpdatedAt = time.Now()

		b, err := s.encode(st)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err == nil {
			result = st
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return State{}, err
		}
		return result, nil
	}
	return State{}, fmt.Errorf("update session %s: %w", id, redis.TxFailedErr)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

func (s *RedisStore) encode(st State) ([]byte, error) {
	b, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	if s.sealer == nil {
		return b, nil
	}
	return s.sealer.Seal(b)
}

func (s *RedisStore) decode(data []byte) (State, error) {
	if s.sealer != nil {
		plain, err := s.sealer.Open(data)
		if err != nil {
			return State{}, err
		}
		data = plain
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode session: %w", err)
	}
	return st.Clone(), nil
}
