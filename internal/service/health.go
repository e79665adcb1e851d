package service

import (
	"context"
	"time"

	"slotbook/internal/cache"
	"slotbook/internal/domain"
	"slotbook/internal/repository"
)

const healthPingTimeout = 2 * time.Second

type HealthServiceImpl struct {
	store repository.StorePinger
	cache *cache.Client
}

func NewHealthService(store repository.StorePinger, cache *cache.Client) *HealthServiceImpl {
	return &HealthServiceImpl{
		store: store,
		cache: cache,
	}
}

// Check всегда отвечает "healthy": сервис жив, даже если хранилище недоступно.
// Состояние хранилища и кеша передается отдельными полями.
func (s *HealthServiceImpl) Check(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Database:  "disconnected",
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if s.store != nil && s.store.Ping(pingCtx) == nil {
		status.Database = "connected"
	}

	if s.cache.Enabled() {
		status.Cache = "disconnected"
		if s.cache.Ping(pingCtx) == nil {
			status.Cache = "connected"
		}
	}

	return status
}
