package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/listing-search/internal/search"
)

const (
	keyPrefix = "listings:page:"
	scanBatch = 200
)

// RedisService caches archive result pages.
type RedisService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisService(rdb *redis.Client, ttl time.Duration) *RedisService {
	return &RedisService{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get implements search.PageCache.
func (s *RedisService) Get(ctx context.Context, key string) (search.ResultPage, bool, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return search.ResultPage{}, false, nil
	}
	if err != nil {
		return search.ResultPage{}, false, fmt.Errorf("failed to read cached page: %w", err)
	}

	var page search.ResultPage
	if err := json.Unmarshal(data, &page); err != nil {
		return search.ResultPage{}, false, fmt.Errorf("failed to decode cached page: %w", err)
	}
	return page, true, nil
}

// Set implements search.PageCache.
func (s *RedisService) Set(ctx context.Context, key string, page search.ResultPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	return s.rdb.Set(ctx, keyPrefix+key, data, s.ttl).Err()
}

// Invalidate drops every cached page. Keys are collected before deleting so
// the scan cursor never runs over a shrinking keyspace.
func (s *RedisService) Invalidate(ctx context.Context) (int, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan cached pages: %w", err)
	}

	var deleted int
	for batch := range slices.Chunk(keys, scanBatch) {
		n, err := s.rdb.Del(ctx, batch...).Result()
		deleted += int(n)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete cached pages: %w", err)
		}
	}
	return deleted, nil
}
