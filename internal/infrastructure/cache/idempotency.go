package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "idem:"
	pendingMarker = "PENDING"
)

// ErrInProgress otra petición con la misma clave sigue en curso.
var ErrInProgress = errors.New("cache: petición idempotente en curso")

// StoredResponse respuesta guardada para reproducir reintentos del cliente.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore reserva claves Idempotency-Key en Redis con TTL.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el store.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve toma la clave. Si ya existe devuelve la respuesta guardada,
// o ErrInProgress si la primera petición no ha terminado.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (*StoredResponse, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: reservar %s: %w", key, err)
	}
	if ok {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expiró entre SETNX y GET
		return s.Reserve(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: leer %s: %w", key, err)
	}
	if string(raw) == pendingMarker {
		return nil, ErrInProgress
	}
	var stored StoredResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("cache: decodificar %s: %w", key, err)
	}
	return &stored, nil
}

// Complete guarda la respuesta final bajo la clave reservada.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+key, raw, s.ttl).Err()
}

// Release libera la clave para que el cliente pueda reintentar.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
