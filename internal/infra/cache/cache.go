package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisKV хранилище ключ-значение поверх Redis
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV создает новый экземпляр хранилища поверх подключенного клиента Redis
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get возвращает значение по ключу
// Возвращает ErrCacheMiss, если ключ отсутствует
func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := kv.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("%w: Get - key=%s: %v", ErrExecCommand, key, err)
	}

	return value, nil
}

// Set записывает значение по ключу с временем жизни
func (kv *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := kv.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - key=%s: %v", ErrExecCommand, key, err)
	}

	return nil
}

// Delete удаляет ключ из кеша
func (kv *RedisKV) Delete(ctx context.Context, key string) error {
	if err := kv.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: Delete - key=%s: %v", ErrExecCommand, key, err)
	}

	return nil
}
