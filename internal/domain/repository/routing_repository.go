package repository

import (
	"context"

	"github.com/bikeroute-microservice/internal/domain"
)

// RoutingRepository - клиент внешнего движка маршрутизации.
// Пустой результат движка выражается ошибкой NO_ROUTE_FOUND, транспортные
// ошибки пробрасываются как есть.
type RoutingRepository interface {
	// SingleRoute возвращает лучший путь для одного профиля
	SingleRoute(ctx context.Context, from, to domain.Coordinate, profile string) (*domain.Path, error)

	// AlternativeRoutes возвращает до maxPaths альтернатив для одного профиля
	AlternativeRoutes(ctx context.Context, from, to domain.Coordinate, profile string, maxPaths int) ([]*domain.Path, error)

	// MultipleProfileRoutes запрашивает альтернативы по всем велосипедным профилям;
	// частичные сбои отдельных профилей логируются и пропускаются
	MultipleProfileRoutes(ctx context.Context, from, to domain.Coordinate) ([]*domain.Path, error)

	// CircularRoutes запрашивает круговые маршруты по всем велосипедным профилям
	CircularRoutes(ctx context.Context, start domain.Coordinate, targetDistanceMeters float64) ([]*domain.Path, error)

	// SingleCircularRoute - круговой маршрут для одного профиля
	SingleCircularRoute(ctx context.Context, start domain.Coordinate, profile string, targetDistanceMeters float64) (*domain.Path, error)
}
