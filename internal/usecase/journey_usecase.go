package usecase

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/errors"
	"github.com/bikeroute-microservice/internal/usecase/dto"
)

// Допуск совпадения начала и конца (~10 м), при котором запрос
// трактуется как круг через промежуточные точки
const roundTripToleranceDeg = 0.0001

// JourneyUseCase - точка входа планирования поездок. Определяет форму
// запроса и прогоняет конвейер локатор -> движок -> оптимизатор -> сборщик.
type JourneyUseCase struct {
	locator     *StationLocatorUseCase
	routingRepo repository.RoutingRepository
	optimizer   *RouteOptimizerUseCase
	builder     *RouteBuilderUseCase
	logger      *zap.Logger
}

func NewJourneyUseCase(
	locator *StationLocatorUseCase,
	routingRepo repository.RoutingRepository,
	optimizer *RouteOptimizerUseCase,
	builder *RouteBuilderUseCase,
	logger *zap.Logger,
) *JourneyUseCase {
	return &JourneyUseCase{
		locator:     locator,
		routingRepo: routingRepo,
		optimizer:   optimizer,
		builder:     builder,
		logger:      logger,
	}
}

// PlanJourney выбирает ровно одну из четырёх форм запроса по наличию и
// равенству start/end/waypoints/target_distance и возвращает до трёх
// поездок в фиксированном порядке категорий.
func (uc *JourneyUseCase) PlanJourney(ctx context.Context, req dto.JourneyRequest) (*dto.JourneyResponse, error) {
	started := time.Now()

	start := domain.Coordinate{Lat: req.Start.Lat, Lon: req.Start.Lon}

	var routes []dto.RouteDto
	var err error

	switch {
	case req.End == nil && req.TargetDistance > 0:
		routes, err = uc.planCircular(ctx, start, req.TargetDistance)

	case req.End == nil:
		return nil, errors.ErrInvalidRequest

	case isSamePoint(start, domain.Coordinate{Lat: req.End.Lat, Lon: req.End.Lon}):
		routes, err = uc.planRoundTrip(ctx, start, req.Waypoints)

	case len(req.Waypoints) > 0:
		routes, err = uc.planMultiWaypoint(ctx, start, domain.Coordinate{Lat: req.End.Lat, Lon: req.End.Lon}, req.Waypoints)

	default:
		routes, err = uc.planDirect(ctx, start, domain.Coordinate{Lat: req.End.Lat, Lon: req.End.Lon})
	}

	if err != nil {
		return nil, err
	}

	return &dto.JourneyResponse{
		Routes: routes,
		TookMs: time.Since(started).Milliseconds(),
	}, nil
}

// planDirect: станции у обоих концов параллельно, пешие плечи параллельно,
// один мультипрофильный вызов движка, выбор категорий, сборка
func (uc *JourneyUseCase) planDirect(ctx context.Context, start, end domain.Coordinate) ([]dto.RouteDto, error) {
	startStation, endStation, err := uc.locator.FindPair(ctx, start, end)
	if err != nil {
		return nil, err
	}

	walkTo, walkFrom, err := uc.fetchWalkLegs(ctx,
		start, startStation.Coordinate(),
		endStation.Coordinate(), end)
	if err != nil {
		return nil, err
	}

	bikePaths, err := uc.routingRepo.MultipleProfileRoutes(ctx, startStation.Coordinate(), endStation.Coordinate())
	if err != nil {
		return nil, err
	}

	selected := uc.optimizer.SelectOptimal(ctx, bikePaths)

	routes := make([]dto.RouteDto, 0, len(selected))
	for _, cp := range selected {
		routes = append(routes, uc.builder.BuildThreeLegRoute(walkTo, cp, walkFrom, startStation, endStation))
	}

	return routes, nil
}

// planMultiWaypoint: маршрутные точки [станция старта, waypoints, станция
// финиша], по-плечевая сборка на каждую категорию. route_id берётся из
// параллельного optimal-запроса по той же паре станций: сохранённая под ним
// деталь может геометрически отличаться от отображаемого по-плечевого
// маршрута - поведение унаследовано и сознательно не "исправляется".
func (uc *JourneyUseCase) planMultiWaypoint(ctx context.Context, start, end domain.Coordinate, waypoints []dto.Point) ([]dto.RouteDto, error) {
	startStation, endStation, err := uc.locator.FindPair(ctx, start, end)
	if err != nil {
		return nil, err
	}

	walkTo, walkFrom, err := uc.fetchWalkLegs(ctx,
		start, startStation.Coordinate(),
		endStation.Coordinate(), end)
	if err != nil {
		return nil, err
	}

	// Параллельный optimal-запрос только ради route_id по категориям;
	// его сбой не мешает основной сборке
	idsChan := make(chan map[string]string, 1)
	go func() {
		ids := make(map[string]string)
		paths, lookupErr := uc.routingRepo.MultipleProfileRoutes(ctx, startStation.Coordinate(), endStation.Coordinate())
		if lookupErr != nil {
			uc.logger.Warn("Optimal route lookup for route ids failed", zap.Error(lookupErr))
			idsChan <- ids
			return
		}
		for _, cp := range uc.optimizer.SelectOptimal(ctx, paths) {
			ids[cp.RouteCategory] = cp.RouteID
		}
		idsChan <- ids
	}()

	points := make([]domain.Coordinate, 0, len(waypoints)+2)
	points = append(points, startStation.Coordinate())
	for _, wp := range waypoints {
		points = append(points, domain.Coordinate{Lat: wp.Lat, Lon: wp.Lon})
	}
	points = append(points, endStation.Coordinate())

	routes := make([]dto.RouteDto, 0, len(domain.RouteCategories))
	for _, category := range domain.RouteCategories {
		route, buildErr := uc.builder.BuildMultiLegRoute(ctx, points, category, MultiLegOptions{
			WalkToStart:  walkTo,
			WalkFromEnd:  walkFrom,
			StartStation: startStation,
			EndStation:   endStation,
		})
		if buildErr != nil {
			return nil, buildErr
		}
		routes = append(routes, *route)
	}

	routeIDs := <-idsChan
	for i := range routes {
		routes[i].RouteID = routeIDs[routes[i].RouteCategory]
	}

	return routes, nil
}

// planRoundTrip: start == end, круг через обязательные waypoints
// вокруг одной станции
func (uc *JourneyUseCase) planRoundTrip(ctx context.Context, start domain.Coordinate, waypoints []dto.Point) ([]dto.RouteDto, error) {
	if len(waypoints) == 0 {
		return nil, errors.ErrWaypointsRequired
	}

	station, err := uc.locator.FindSingle(ctx, start, "round_trip")
	if err != nil {
		return nil, err
	}

	walkTo, walkBack, err := uc.fetchWalkLegs(ctx,
		start, station.Coordinate(),
		station.Coordinate(), start)
	if err != nil {
		return nil, err
	}

	points := make([]domain.Coordinate, 0, len(waypoints)+2)
	points = append(points, station.Coordinate())
	for _, wp := range waypoints {
		points = append(points, domain.Coordinate{Lat: wp.Lat, Lon: wp.Lon})
	}
	points = append(points, station.Coordinate())

	routes := make([]dto.RouteDto, 0, len(domain.RouteCategories))
	for _, category := range domain.RouteCategories {
		route, buildErr := uc.builder.BuildMultiLegRoute(ctx, points, category, MultiLegOptions{
			WalkToStart:  walkTo,
			WalkFromEnd:  walkBack,
			StartStation: station,
			EndStation:   station,
		})
		if buildErr != nil {
			return nil, buildErr
		}
		routes = append(routes, *route)
	}

	return routes, nil
}

// planCircular: одна станция, круговые маршруты на целевую дистанцию;
// меньше трёх (вплоть до нуля) поездок - валидный результат
func (uc *JourneyUseCase) planCircular(ctx context.Context, start domain.Coordinate, targetDistance float64) ([]dto.RouteDto, error) {
	station, err := uc.locator.FindSingle(ctx, start, "circular")
	if err != nil {
		return nil, err
	}

	walkTo, walkBack, err := uc.fetchWalkLegs(ctx,
		start, station.Coordinate(),
		station.Coordinate(), start)
	if err != nil {
		return nil, err
	}

	selected := uc.optimizer.OptimalCircularRoutes(ctx, station.Coordinate(), targetDistance)

	routes := make([]dto.RouteDto, 0, len(selected))
	for _, cp := range selected {
		routes = append(routes, uc.builder.BuildThreeLegRoute(walkTo, cp, walkBack, station, station))
	}

	return routes, nil
}

// fetchWalkLegs запрашивает оба пеших плеча параллельно; обязательные шаги,
// ошибка любого прерывает запрос
func (uc *JourneyUseCase) fetchWalkLegs(ctx context.Context, aFrom, aTo, bFrom, bTo domain.Coordinate) (*domain.Path, *domain.Path, error) {
	type legResult struct {
		index int
		path  *domain.Path
		err   error
	}

	resultsChan := make(chan legResult, 2)

	fetch := func(index int, from, to domain.Coordinate) {
		path, err := uc.routingRepo.SingleRoute(ctx, from, to, domain.ProfileFoot)
		resultsChan <- legResult{index: index, path: path, err: err}
	}

	go fetch(0, aFrom, aTo)
	go fetch(1, bFrom, bTo)

	var legs [2]*domain.Path
	for i := 0; i < 2; i++ {
		res := <-resultsChan
		if res.err != nil {
			uc.logger.Error("Walk leg request failed",
				zap.Int("leg", res.index),
				zap.Error(res.err))
			return nil, nil, res.err
		}
		legs[res.index] = res.path
	}
	close(resultsChan)

	return legs[0], legs[1], nil
}

func isSamePoint(a, b domain.Coordinate) bool {
	return math.Abs(a.Lat-b.Lat) <= roundTripToleranceDeg &&
		math.Abs(a.Lon-b.Lon) <= roundTripToleranceDeg
}
