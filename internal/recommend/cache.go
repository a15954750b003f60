package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// cachedService guarda en Redis las respuestas de otro Service. Redis nunca
// es una fuente de error: si falla, se responde con el servicio envuelto.
type cachedService struct {
	next      Service
	rdb       redis.UniversalClient
	ttl       time.Duration
	namespace string
}

// NewCachedService wraps next with a Redis response cache. namespace should
// identify the loaded artifacts (see catalog.Store.Fingerprint).
func NewCachedService(next Service, rdb redis.UniversalClient, ttl time.Duration, namespace string) Service {
	return &cachedService{next: next, rdb: rdb, ttl: ttl, namespace: namespace}
}

func (s *cachedService) recommendKey(title string, f Filters) string {
	b, _ := json.Marshal(struct {
		Title   string  `json:"t"`
		Filters Filters `json:"f"`
	}{title, f})
	return "reco:" + s.namespace + ":" + string(b)
}

func (s *cachedService) suggestKey(q string) string {
	return "suggest:" + s.namespace + ":" + strings.ToLower(q)
}

func (s *cachedService) Recommend(ctx context.Context, title string, f Filters) ([]Item, error) {
	key := s.recommendKey(title, f)
	var cached []Item
	if s.get(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.next.Recommend(ctx, title, f)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, items)
	return items, nil
}

func (s *cachedService) Suggest(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return s.next.Suggest(ctx, query)
	}
	key := s.suggestKey(query)
	var cached []string
	if s.get(ctx, key, &cached) {
		return cached, nil
	}

	titles, err := s.next.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, titles)
	return titles, nil
}

func (s *cachedService) get(ctx context.Context, key string, dst interface{}) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[REDIS] Error leyendo %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[REDIS] Valor corrupto en %s: %v", key, err)
		return false
	}
	return true
}

func (s *cachedService) set(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Printf("[REDIS] Error guardando %s: %v", key, err)
	}
}
