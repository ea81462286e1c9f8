package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pizza-storefront/internal/domain"
)

// removed marks a list slot for deletion; it can never be a JSON document.
const removed = "\x00removed"

const maxWatchRetries = 5

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedis stores each cart as a list of JSON line items under cart:{id}:items
// with its checkout token under cart:{id}:token. Both keys expire after ttl
// without mutation.
func NewRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &redisStore{client: client, ttl: ttl, logger: logger}
}

func itemsKey(sessionID string) string { return fmt.Sprintf("cart:%s:items", sessionID) }
func tokenKey(sessionID string) string { return fmt.Sprintf("cart:%s:token", sessionID) }

func (s *redisStore) Append(ctx context.Context, sessionID string, item domain.LineItem) (int, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return 0, fmt.Errorf("marshal line item: %w", err)
	}

	var size *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		size = pipe.RPush(ctx, itemsKey(sessionID), raw)
		s.touch(ctx, pipe, sessionID)
		return nil
	})
	if err != nil {
		s.logger.Printf("cart redis: append session=%s err=%v", sessionID, err)
		return 0, fmt.Errorf("redis append failed: %w", err)
	}
	return int(size.Val()), nil
}

func (s *redisStore) RemoveAt(ctx context.Context, sessionID string, index int) error {
	if index < 0 {
		return nil
	}
	key := itemsKey(sessionID)

	txf := func(tx *redis.Tx) error {
		n, err := tx.LLen(ctx, key).Result()
		if err != nil {
			return err
		}
		if int64(index) >= n {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, key, int64(index), removed)
			pipe.LRem(ctx, key, 1, removed)
			s.touch(ctx, pipe, sessionID)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			s.logger.Printf("cart redis: remove session=%s index=%d err=%v", sessionID, index, err)
			return fmt.Errorf("redis remove failed: %w", err)
		}
		return nil
	}
	return fmt.Errorf("redis remove failed: %w", redis.TxFailedErr)
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	var (
		rawItems *redis.StringSliceCmd
		token    *redis.StringCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		rawItems = pipe.LRange(ctx, itemsKey(sessionID), 0, -1)
		token = pipe.Get(ctx, tokenKey(sessionID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.Cart{}, fmt.Errorf("redis get failed: %w", err)
	}

	cart := domain.Cart{Items: make([]domain.LineItem, 0, len(rawItems.Val()))}
	for i, raw := range rawItems.Val() {
		var item domain.LineItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return domain.Cart{}, fmt.Errorf("unmarshal line item %d: %w", i, err)
		}
		cart.Items = append(cart.Items, item)
	}
	if len(cart.Items) > 0 {
		cart.Token = token.Val()
	}
	return cart, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, itemsKey(sessionID), tokenKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *redisStore) touch(ctx context.Context, pipe redis.Pipeliner, sessionID string) {
	pipe.Set(ctx, tokenKey(sessionID), uuid.NewString(), s.ttl)
	if s.ttl > 0 {
		pipe.Expire(ctx, itemsKey(sessionID), s.ttl)
	}
}

func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
