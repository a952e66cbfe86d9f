package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient reste nil quand REDIS_ADDR n'est pas configuré : toutes les
// fonctions du paquet deviennent alors des no-op (cache toujours vide).
var RedisClient *redis.Client

var StatsTTL = time.Minute

func InitRedis(addr, password string, ttl time.Duration) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connexion redis: %w", err)
	}

	RedisClient = client
	if ttl > 0 {
		StatsTTL = ttl
	}
	return nil
}

func Close() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}

func StatsKey(userID uint) string {
	return fmt.Sprintf("stats:user:%d", userID)
}

// GetJSON renvoie false sur absence de clé ou cache désactivé
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if RedisClient == nil {
		return false, nil
	}

	raw, err := RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, key, payload, ttl).Err()
}

// InvalidateStats est appelé après chaque écriture sur les posts d'un utilisateur
func InvalidateStats(ctx context.Context, userID uint) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, StatsKey(userID)).Err()
}
