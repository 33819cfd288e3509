package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bikeroute-microservice/internal/domain"
)

// MockRoutingRepository is a mock of RoutingRepository
type MockRoutingRepository struct {
	mock.Mock
}

func (m *MockRoutingRepository) SingleRoute(ctx context.Context, from, to domain.Coordinate, profile string) (*domain.Path, error) {
	args := m.Called(ctx, from, to, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Path), args.Error(1)
}

func (m *MockRoutingRepository) AlternativeRoutes(ctx context.Context, from, to domain.Coordinate, profile string, maxPaths int) ([]*domain.Path, error) {
	args := m.Called(ctx, from, to, profile, maxPaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Path), args.Error(1)
}

func (m *MockRoutingRepository) MultipleProfileRoutes(ctx context.Context, from, to domain.Coordinate) ([]*domain.Path, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Path), args.Error(1)
}

func (m *MockRoutingRepository) CircularRoutes(ctx context.Context, start domain.Coordinate, targetDistanceMeters float64) ([]*domain.Path, error) {
	args := m.Called(ctx, start, targetDistanceMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Path), args.Error(1)
}

func (m *MockRoutingRepository) SingleCircularRoute(ctx context.Context, start domain.Coordinate, profile string, targetDistanceMeters float64) (*domain.Path, error) {
	args := m.Called(ctx, start, profile, targetDistanceMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Path), args.Error(1)
}

// MockStationRepository is a mock of StationRepository
type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) FindNearby(ctx context.Context, lat, lon float64, limit int) ([]*domain.Station, error) {
	args := m.Called(ctx, lat, lon, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

func (m *MockStationRepository) FindAll(ctx context.Context) ([]*domain.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

func (m *MockStationRepository) FindByNumbers(ctx context.Context, numbers []int) ([]*domain.Station, error) {
	args := m.Called(ctx, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

// MockRouteCacheRepository is a mock of RouteCacheRepository
type MockRouteCacheRepository struct {
	mock.Mock
}

func (m *MockRouteCacheRepository) SaveRoute(ctx context.Context, route *domain.CategorizedPath, ttl time.Duration) error {
	args := m.Called(ctx, route, ttl)
	return args.Error(0)
}

func (m *MockRouteCacheRepository) GetRoute(ctx context.Context, routeID string) (*domain.CategorizedPath, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorizedPath), args.Error(1)
}

// MockRoutePersister is a mock of RoutePersister
type MockRoutePersister struct {
	mock.Mock
}

func (m *MockRoutePersister) Enqueue(route *domain.CategorizedPath) bool {
	args := m.Called(route)
	return args.Bool(0)
}

// bikePath - путь движка с заданными метриками и полностью велодорожечной геометрией
func bikePath(distance float64, timeMs int64, profile string) *domain.Path {
	return &domain.Path{
		Distance: distance,
		Time:     timeMs,
		Points: [][]float64{
			{126.970, 37.560},
			{126.975, 37.562},
			{126.980, 37.564},
		},
		Details: domain.PathDetails{
			RoadClass: []domain.DetailInterval{{Start: 0, End: 2, Value: "cycleway"}},
		},
		Profile: profile,
	}
}

// walkPath - пешее плечо без деталей
func walkPath(distance float64, timeMs int64) *domain.Path {
	return &domain.Path{
		Distance: distance,
		Time:     timeMs,
		Points: [][]float64{
			{126.968, 37.559},
			{126.970, 37.560},
		},
		Profile: domain.ProfileFoot,
	}
}

func testStation(number int, lat, lon float64, bikes int) *domain.Station {
	return &domain.Station{
		Number:       number,
		Name:         "Station",
		Lat:          lat,
		Lon:          lon,
		CurrentBikes: bikes,
		Status:       domain.StationStatusAvailable,
	}
}
