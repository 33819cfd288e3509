package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/errors"
)

// RouteDetailUseCase - чтение сохранённой детали маршрута по route_id.
// Запись живёт 180 секунд; промах после истечения - ожидаемое поведение
// продукта, наружу отдаётся ROUTE_EXPIRED.
type RouteDetailUseCase struct {
	routeCache repository.RouteCacheRepository
	logger     *zap.Logger
}

func NewRouteDetailUseCase(
	routeCache repository.RouteCacheRepository,
	logger *zap.Logger,
) *RouteDetailUseCase {
	return &RouteDetailUseCase{
		routeCache: routeCache,
		logger:     logger,
	}
}

func (uc *RouteDetailUseCase) GetRoute(ctx context.Context, routeID string) (*domain.CategorizedPath, error) {
	if routeID == "" {
		return nil, errors.ErrInvalidRequest
	}

	route, err := uc.routeCache.GetRoute(ctx, routeID)
	if err != nil {
		uc.logger.Error("Failed to read route from cache",
			zap.String("route_id", routeID),
			zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if route == nil {
		return nil, errors.ErrRouteExpired
	}

	return route, nil
}
