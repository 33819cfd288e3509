package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
)

type routeCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRouteCacheRepository(redis *Redis) repository.RouteCacheRepository {
	return &routeCacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func routeKey(routeID string) string {
	return fmt.Sprintf("route:%s", routeID)
}

// SaveRoute - write-once запись; ключ уникален на каждую запись,
// конкуренции чтение-изменение-запись нет
func (r *routeCacheRepository) SaveRoute(ctx context.Context, route *domain.CategorizedPath, ttl time.Duration) error {
	data, err := json.Marshal(route)
	if err != nil {
		r.logger.Error("Failed to marshal route", zap.String("route_id", route.RouteID), zap.Error(err))
		return fmt.Errorf("marshal route: %w", err)
	}

	key := routeKey(route.RouteID)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set route cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Route cached", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *routeCacheRepository) GetRoute(ctx context.Context, routeID string) (*domain.CategorizedPath, error) {
	key := routeKey(routeID)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss - маршрут истёк, это ожидаемо
	}
	if err != nil {
		r.logger.Error("Failed to get route from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var route domain.CategorizedPath
	if err := json.Unmarshal(data, &route); err != nil {
		r.logger.Error("Failed to unmarshal cached route", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal route: %w", err)
	}

	r.logger.Debug("Route cache hit", zap.String("key", key))
	return &route, nil
}
