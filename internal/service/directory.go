package service

import (
	"context"
	"strings"
	"time"

	"slotbook/internal/cache"
	"slotbook/internal/domain"
)

const specialistsNamespace = "specialists"

// directoryCache кеширует результаты поиска специалистов. Любое изменение
// пользователей сдвигает поколение, и старые ключи перестают читаться.
type directoryCache struct {
	cache *cache.Client
	ttl   time.Duration
}

func newDirectoryCache(c *cache.Client, ttl time.Duration) *directoryCache {
	return &directoryCache{cache: c, ttl: ttl}
}

func (d *directoryCache) key(ctx context.Context, filter domain.SpecialistFilter) string {
	gen := d.cache.Generation(ctx, specialistsNamespace)
	return cache.Key(specialistsNamespace, gen, strings.ToLower(strings.TrimSpace(filter.Query)), string(filter.Category))
}

func (d *directoryCache) get(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, bool) {
	if d == nil || !d.cache.Enabled() {
		return nil, false
	}
	var users []domain.User
	if !d.cache.GetJSON(ctx, d.key(ctx, filter), &users) {
		return nil, false
	}
	return users, true
}

func (d *directoryCache) put(ctx context.Context, filter domain.SpecialistFilter, users []domain.User) {
	if d == nil || !d.cache.Enabled() {
		return
	}
	d.cache.SetJSON(ctx, d.key(ctx, filter), users, d.ttl)
}

func (d *directoryCache) invalidate(ctx context.Context) {
	if d == nil {
		return
	}
	d.cache.Bump(ctx, specialistsNamespace)
}
