package blacklist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "blacklist:"

// Redis blacklist compartida entre instancias. La clave es el SHA-256 del token y
// el TTL la vigencia restante, así Redis expira la entrada junto con el token.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedis envuelve un cliente ya configurado.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, now: time.Now}
}

// NewRedisClient construye el cliente desde una URL redis:// y verifica la conexión.
func NewRedisClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db > 0 {
		opts.DB = db
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// IsBlacklisted consulta la existencia de la clave del token.
func (r *Redis) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: exists: %w", err)
	}
	return n > 0, nil
}

// Blacklist guarda el token con TTL hasta expiresAt. Un token ya vencido se ignora.
func (r *Redis) Blacklist(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if token == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, tokenKey(token), expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("redis: set: %w", err)
	}
	return nil
}
