package repository

import (
	"context"

	"github.com/bikeroute-microservice/internal/domain"
)

// StationRepository - доступ к инвентарю станций велопроката
type StationRepository interface {
	// FindNearby - поиск ближайших станций с актуальной доступностью
	FindNearby(ctx context.Context, lat, lon float64, limit int) ([]*domain.Station, error)

	// FindAll - полный инвентарь станций (для fallback-сканирования)
	FindAll(ctx context.Context) ([]*domain.Station, error)

	// FindByNumbers - станции по списку номеров
	FindByNumbers(ctx context.Context, numbers []int) ([]*domain.Station, error)
}
