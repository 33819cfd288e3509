package repository

import (
	"context"
	"time"

	"github.com/bikeroute-microservice/internal/domain"
)

// RouteCacheRepository - короткоживущее хранилище деталей маршрутов.
// Запись write-once с TTL; отсутствие ключа при чтении - нормальный miss,
// а не ошибка.
type RouteCacheRepository interface {
	SaveRoute(ctx context.Context, route *domain.CategorizedPath, ttl time.Duration) error

	// GetRoute возвращает (nil, nil) при cache miss
	GetRoute(ctx context.Context, routeID string) (*domain.CategorizedPath, error)
}
