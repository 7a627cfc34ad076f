package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdesk/taskdesk/models"
)

// TaskCache is a read-through cache for single tasks. A nil, nil return
// from GetTask is a cache miss.
type TaskCache interface {
	GetTask(ctx context.Context, id int) (*models.Task, error)
	SetTask(ctx context.Context, task *models.Task, ttl time.Duration) error
	DeleteTask(ctx context.Context, id int) error
}

// RedisTaskCache caches tasks in Redis under task:<id>.
type RedisTaskCache struct {
	rdb *redis.Client
}

// NewRedisTaskCache creates a Redis-backed task cache.
func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

func taskKey(id int) string {
	return "task:" + strconv.Itoa(id)
}

// GetTask returns the cached task or nil on a miss.
func (c *RedisTaskCache) GetTask(ctx context.Context, id int) (*models.Task, error) {
	val, err := c.rdb.Get(ctx, taskKey(id)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal([]byte(val), &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// SetTask stores the task with the given TTL.
func (c *RedisTaskCache) SetTask(ctx context.Context, task *models.Task, ttl time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, taskKey(task.ID), data, ttl).Err()
}

// DeleteTask invalidates the cached task.
func (c *RedisTaskCache) DeleteTask(ctx context.Context, id int) error {
	return c.rdb.Del(ctx, taskKey(id)).Err()
}
