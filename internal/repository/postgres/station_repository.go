package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/errors"
)

type stationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// FindNearby возвращает ближайшие доступные станции с велосипедами.
// Таблица stations синхронизируется отдельным процессом с открытым API
// города, поэтому доступность здесь уже актуальна.
func (r *stationRepository) FindNearby(ctx context.Context, lat, lon float64, limit int) ([]*domain.Station, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT
			s.number, s.name, s.lat, s.lon, s.current_bikes, s.status
		FROM stations s, point
		WHERE s.status = 'available'
		  AND s.current_bikes > 0
		ORDER BY s.geometry::geography <-> point.geom
		LIMIT $3
	`

	var stations []*domain.Station
	if err := r.db.SelectContext(ctx, &stations, query, lon, lat, limit); err != nil {
		r.logger.Error("Failed to find nearby stations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stations, nil
}

func (r *stationRepository) FindAll(ctx context.Context) ([]*domain.Station, error) {
	query := `
		SELECT number, name, lat, lon, current_bikes, status
		FROM stations
	`

	var stations []*domain.Station
	if err := r.db.SelectContext(ctx, &stations, query); err != nil {
		r.logger.Error("Failed to load station inventory", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stations, nil
}

func (r *stationRepository) FindByNumbers(ctx context.Context, numbers []int) ([]*domain.Station, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	query := `
		SELECT number, name, lat, lon, current_bikes, status
		FROM stations
		WHERE number = ANY($1)
	`

	var stations []*domain.Station
	if err := r.db.SelectContext(ctx, &stations, query, pq.Array(numbers)); err != nil {
		r.logger.Error("Failed to find stations by numbers",
			zap.Int("count", len(numbers)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stations, nil
}
