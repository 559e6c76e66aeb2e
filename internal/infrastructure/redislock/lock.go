package redislock

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/partsunlimited-catalog/internal/application/seed"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
)

var _ seed.Locker = (*Locker)(nil)

// ErrLockLost el candado expiró o lo tomó otro proceso antes de liberarlo.
var ErrLockLost = errors.New("candado perdido")

const defaultTTL = 5 * time.Minute

// releaseScript borra la clave sólo si sigue siendo nuestra.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// refreshScript renueva el TTL sólo si la clave sigue siendo nuestra.
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

// Locker candado de aprovisionamiento sobre Redis (SET NX PX). Mientras está tomado se renueva
// cada ttl/3; el TTL sólo acota cuánto queda tomado si el proceso muere sin liberarlo.
type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New construye el candado. ttl no positivo usa 5 minutos.
func New(client redis.UniversalClient, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Locker{client: client, ttl: ttl}
}

// Acquire toma el candado de key. Si otro lo tiene devuelve domain.ErrSeedInProgress.
func (l *Locker) Acquire(ctx context.Context, key string) (seed.Unlock, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("tomar candado %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeedInProgress, key)
	}
	refreshCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	var lost atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.keepAlive(refreshCtx, key, token, &lost)
	}()

	return func(ctx context.Context) error {
		cancel()
		<-done
		n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("liberar candado %s: %w", key, err)
		}
		if n == 0 || lost.Load() {
			return fmt.Errorf("%w: %s", ErrLockLost, key)
		}
		return nil
	}, nil
}

// keepAlive extiende el TTL hasta que ctx se cancela o la clave deja de ser nuestra.
// Un error de red no corta la renovación: se reintenta en el siguiente tick.
func (l *Locker) keepAlive(ctx context.Context, key, token string, lost *atomic.Bool) {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := refreshScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
			if err != nil {
				continue
			}
			if n == 0 {
				lost.Store(true)
				return
			}
		}
	}
}

// NewClient cliente Redis desde la configuración; ping para fallar temprano.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
