package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultCatalogTTL is used when NewCatalogCache receives a non-positive TTL.
	DefaultCatalogTTL = 24 * time.Hour

	categoryKeyPrefix = "catalog:category"
	itemKeyPrefix     = "catalog:item"
)

// CachedCategory is the read model of a category stored in Redis.
type CachedCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CachedItem is the read model of an item stored in Redis.
// Price is the decimal string form, empty when the item has no price.
type CachedItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `json:"category_id"`
	Price       string    `json:"price"`
	NIS         int64     `json:"nis"`
	DAdded      time.Time `json:"d_added"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogCache provides structured read/write operations for catalog entries.
// Each entry is a Redis hash. Key format: "catalog:{kind}:{id}"
//
// Writes are fenced by version, the entry's UpdatedAt in microseconds. Every
// set and delete records the highest version seen in "catalog:{kind}:{id}:fence",
// and a set older than the fence is dropped. A read that loaded a row before a
// concurrent update therefore cannot put the old row back after the update
// evicted it.
type CatalogCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache backed by r whose entries expire after ttl.
func NewCatalogCache(r *RedisClient, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: r, ttl: ttl}
}

// GetCategory returns redis.Nil when the key does not exist or has expired.
func (c *CatalogCache) GetCategory(ctx context.Context, id uuid.UUID) (*CachedCategory, error) {
	vals, err := c.hgetall(ctx, categoryKey(id))
	if err != nil {
		return nil, err
	}

	out := &CachedCategory{Name: vals["name"], Description: vals["description"]}
	if out.ID, err = uuid.Parse(vals["id"]); err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	if out.CreatedAt, err = parseTime(vals["created_at"]); err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	if out.UpdatedAt, err = parseTime(vals["updated_at"]); err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return out, nil
}

// SetCategory writes a category hash unless a newer version was fenced.
func (c *CatalogCache) SetCategory(ctx context.Context, cat *CachedCategory) error {
	return c.hset(ctx, categoryKey(cat.ID), cat.UpdatedAt,
		"id", cat.ID.String(),
		"name", cat.Name,
		"description", cat.Description,
		"created_at", formatTime(cat.CreatedAt),
		"updated_at", formatTime(cat.UpdatedAt),
	)
}

// DeleteCategory removes a cached category and fences out every write older
// than version.
func (c *CatalogCache) DeleteCategory(ctx context.Context, id uuid.UUID, version time.Time) error {
	return c.del(ctx, categoryKey(id), version)
}

// GetItem returns redis.Nil when the key does not exist or has expired.
func (c *CatalogCache) GetItem(ctx context.Context, id uuid.UUID) (*CachedItem, error) {
	vals, err := c.hgetall(ctx, itemKey(id))
	if err != nil {
		return nil, err
	}

	out := &CachedItem{Name: vals["name"], Description: vals["description"], Price: vals["price"]}
	if out.ID, err = uuid.Parse(vals["id"]); err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	if out.CategoryID, err = uuid.Parse(vals["category_id"]); err != nil {
		return nil, fmt.Errorf("cache parse category_id: %w", err)
	}
	if out.NIS, err = strconv.ParseInt(vals["nis"], 10, 64); err != nil {
		return nil, fmt.Errorf("cache parse nis: %w", err)
	}
	if out.DAdded, err = time.Parse(time.DateOnly, vals["d_added"]); err != nil {
		return nil, fmt.Errorf("cache parse d_added: %w", err)
	}
	if out.CreatedAt, err = parseTime(vals["created_at"]); err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	if out.UpdatedAt, err = parseTime(vals["updated_at"]); err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return out, nil
}

// SetItem writes an item hash unless a newer version was fenced.
func (c *CatalogCache) SetItem(ctx context.Context, it *CachedItem) error {
	return c.hset(ctx, itemKey(it.ID), it.UpdatedAt,
		"id", it.ID.String(),
		"name", it.Name,
		"description", it.Description,
		"category_id", it.CategoryID.String(),
		"price", it.Price,
		"nis", strconv.FormatInt(it.NIS, 10),
		"d_added", it.DAdded.UTC().Format(time.DateOnly),
		"created_at", formatTime(it.CreatedAt),
		"updated_at", formatTime(it.UpdatedAt),
	)
}

// DeleteItem removes a cached item and fences out every write older than
// version.
func (c *CatalogCache) DeleteItem(ctx context.Context, id uuid.UUID, version time.Time) error {
	return c.del(ctx, itemKey(id), version)
}

func (c *CatalogCache) hgetall(ctx context.Context, key string) (map[string]string, error) {
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return vals, nil
}

// setIfCurrent replaces the hash at KEYS[1] unless the fence at KEYS[2] is
// newer than ARGV[1]. ARGV[2] is the TTL in milliseconds, the rest are hash
// field/value pairs. Returns 1 when written.
var setIfCurrent = redis.NewScript(`
local fence = tonumber(redis.call('GET', KEYS[2]))
local version = tonumber(ARGV[1])
if fence and fence > version then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], unpack(ARGV, 3))
redis.call('PEXPIRE', KEYS[1], ARGV[2])
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
return 1
`)

// evictAndFence deletes KEYS[1] and raises the fence at KEYS[2] to ARGV[1].
var evictAndFence = redis.NewScript(`
local fence = tonumber(redis.call('GET', KEYS[2]))
redis.call('DEL', KEYS[1])
if not fence or fence < tonumber(ARGV[1]) then
	redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
end
return 1
`)

func (c *CatalogCache) hset(ctx context.Context, key string, version time.Time, fields ...any) error {
	args := append([]any{versionOf(version), c.ttl.Milliseconds()}, fields...)
	if err := setIfCurrent.Run(ctx, c.client.Client(), []string{key, fenceKey(key)}, args...).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *CatalogCache) del(ctx context.Context, key string, version time.Time) error {
	err := evictAndFence.Run(ctx, c.client.Client(), []string{key, fenceKey(key)}, versionOf(version), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// versionOf truncates to microseconds, the precision Postgres stores, so a row
// read back from the database compares equal to the value that was written.
func versionOf(t time.Time) int64 { return t.UnixMicro() }

func fenceKey(key string) string { return key + ":fence" }

func categoryKey(id uuid.UUID) string { return fmt.Sprintf("%s:%s", categoryKeyPrefix, id) }
func itemKey(id uuid.UUID) string     { return fmt.Sprintf("%s:%s", itemKeyPrefix, id) }

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }
