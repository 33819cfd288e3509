package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/errors"
	"github.com/bikeroute-microservice/internal/pkg/geo"
)

const nearestStationLimit = 10

// StationLocatorUseCase разрешает географическую точку в пригодную станцию
// велопроката. Отсутствие станции - нормальный исход для удалённых координат,
// а не ошибка.
type StationLocatorUseCase struct {
	stationRepo repository.StationRepository
	logger      *zap.Logger
}

func NewStationLocatorUseCase(
	stationRepo repository.StationRepository,
	logger *zap.Logger,
) *StationLocatorUseCase {
	return &StationLocatorUseCase{
		stationRepo: stationRepo,
		logger:      logger,
	}
}

// FindNearest - трёхступенчатый поиск ближайшей станции:
// (1) живой поиск поблизости, (2) при пустом результате - прямое
// сканирование инвентаря, (3) при ошибке ступени 1 - ещё одна попытка
// сканирования перед отказом. Возвращает (nil, nil), если станции нет.
func (uc *StationLocatorUseCase) FindNearest(ctx context.Context, coord domain.Coordinate) (*domain.Station, error) {
	stations, err := uc.stationRepo.FindNearby(ctx, coord.Lat, coord.Lon, nearestStationLimit)
	if err != nil {
		uc.logger.Warn("Nearby station search failed, falling back to inventory scan",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.Error(err))

		station, scanErr := uc.scanInventory(ctx, coord)
		if scanErr == nil {
			return station, nil
		}

		// Повторное сканирование перед тем, как сдаться
		uc.logger.Warn("Inventory scan failed, retrying once", zap.Error(scanErr))
		return uc.scanInventory(ctx, coord)
	}

	for _, s := range stations {
		if s.Usable() {
			return s, nil
		}
	}

	return uc.scanInventory(ctx, coord)
}

// scanInventory - прямое сканирование инвентаря: фильтр по доступности,
// сортировка по расстоянию, ближайшие 10, первая из них
func (uc *StationLocatorUseCase) scanInventory(ctx context.Context, coord domain.Coordinate) (*domain.Station, error) {
	all, err := uc.stationRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	type stationDist struct {
		station  *domain.Station
		distance float64
	}

	candidates := make([]stationDist, 0, len(all))
	for _, s := range all {
		if !s.Usable() {
			continue
		}
		candidates = append(candidates, stationDist{
			station:  s,
			distance: geo.Distance(coord, s.Coordinate()),
		})
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if len(candidates) > nearestStationLimit {
		candidates = candidates[:nearestStationLimit]
	}

	return candidates[0].station, nil
}

// FindPair разрешает станции у начала и конца маршрута параллельно.
// Возвращает STATION_UNAVAILABLE с указанием стороны, если какая-то
// из них не нашлась.
func (uc *StationLocatorUseCase) FindPair(ctx context.Context, start, end domain.Coordinate) (*domain.Station, *domain.Station, error) {
	type sideResult struct {
		side    string
		station *domain.Station
		err     error
	}

	resultsChan := make(chan sideResult, 2)

	lookup := func(side string, coord domain.Coordinate) {
		station, err := uc.FindNearest(ctx, coord)
		resultsChan <- sideResult{side: side, station: station, err: err}
	}

	go lookup("start", start)
	go lookup("end", end)

	var startStation, endStation *domain.Station
	for i := 0; i < 2; i++ {
		res := <-resultsChan
		if res.err != nil {
			uc.logger.Error("Station resolution failed",
				zap.String("side", res.side),
				zap.Error(res.err))
			return nil, nil, res.err
		}
		if res.station == nil {
			return nil, nil, errors.ErrStationUnavailable.WithDetails(map[string]interface{}{
				"side": res.side,
			})
		}
		if res.side == "start" {
			startStation = res.station
		} else {
			endStation = res.station
		}
	}
	close(resultsChan)

	return startStation, endStation, nil
}

// FindSingle - обёртка для круговых поездок: одна станция или
// STATION_UNAVAILABLE с назначением
func (uc *StationLocatorUseCase) FindSingle(ctx context.Context, coord domain.Coordinate, purpose string) (*domain.Station, error) {
	station, err := uc.FindNearest(ctx, coord)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, errors.ErrStationUnavailable.WithDetails(map[string]interface{}{
			"purpose": purpose,
		})
	}
	return station, nil
}

// FindByNumbers - точечная выборка станций по номерам (для API станций)
func (uc *StationLocatorUseCase) FindByNumbers(ctx context.Context, numbers []int) ([]*domain.Station, error) {
	if len(numbers) == 0 {
		return nil, errors.ErrInvalidRequest
	}
	return uc.stationRepo.FindByNumbers(ctx, numbers)
}

// NearbyWithDistance - ближайшие станции с расстоянием до точки поиска
// (для API поиска станций)
func (uc *StationLocatorUseCase) NearbyWithDistance(ctx context.Context, coord domain.Coordinate, limit int) ([]*domain.Station, []float64, error) {
	if limit == 0 {
		limit = nearestStationLimit
	}

	stations, err := uc.stationRepo.FindNearby(ctx, coord.Lat, coord.Lon, limit)
	if err != nil {
		return nil, nil, err
	}

	distances := make([]float64, len(stations))
	for i, s := range stations {
		distances[i] = geo.Distance(coord, s.Coordinate())
	}

	return stations, distances, nil
}
