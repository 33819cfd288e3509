package routecache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/worker/routecache"
)

// MockRouteCacheRepository is a mock of RouteCacheRepository
type MockRouteCacheRepository struct {
	mock.Mock
	saved chan string
}

func newMockRouteCache() *MockRouteCacheRepository {
	return &MockRouteCacheRepository{saved: make(chan string, 16)}
}

func (m *MockRouteCacheRepository) SaveRoute(ctx context.Context, route *domain.CategorizedPath, ttl time.Duration) error {
	args := m.Called(ctx, route, ttl)
	m.saved <- route.RouteID
	return args.Error(0)
}

func (m *MockRouteCacheRepository) GetRoute(ctx context.Context, routeID string) (*domain.CategorizedPath, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorizedPath), args.Error(1)
}

func testRoute(id string) *domain.CategorizedPath {
	return &domain.CategorizedPath{
		Path:          domain.Path{Distance: 5000, Time: 1200000, Profile: domain.ProfileSafeBike},
		RouteCategory: domain.CategoryBikeLanePriority,
		RouteID:       id,
	}
}

func waitSaved(t *testing.T, mockCache *MockRouteCacheRepository) string {
	t.Helper()
	select {
	case id := <-mockCache.saved:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("route was not persisted in time")
		return ""
	}
}

func TestPersistWorker_Enqueue(t *testing.T) {
	logger := zap.NewNop()

	t.Run("queued route is written with configured ttl", func(t *testing.T) {
		mockCache := newMockRouteCache()
		ttl := 180 * time.Second
		worker := routecache.NewPersistWorker(mockCache, ttl, 4, logger)

		mockCache.On("SaveRoute", mock.Anything, mock.Anything, ttl).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go worker.Start(ctx)
		defer worker.Stop()

		assert.True(t, worker.Enqueue(testRoute("r-1")))
		assert.Equal(t, "r-1", waitSaved(t, mockCache))
	})

	t.Run("full queue drops the record", func(t *testing.T) {
		mockCache := newMockRouteCache()
		// Воркер не запущен: очередь размером 1 заполняется первым же вызовом
		worker := routecache.NewPersistWorker(mockCache, time.Minute, 1, logger)

		assert.True(t, worker.Enqueue(testRoute("r-1")))
		assert.False(t, worker.Enqueue(testRoute("r-2")))
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		mockCache := newMockRouteCache()
		worker := routecache.NewPersistWorker(mockCache, time.Minute, 4, logger)

		mockCache.On("SaveRoute", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection refused"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go worker.Start(ctx)
		defer worker.Stop()

		assert.True(t, worker.Enqueue(testRoute("r-err")))
		waitSaved(t, mockCache)

		// Воркер живёт дальше и принимает следующие записи
		assert.True(t, worker.Enqueue(testRoute("r-next")))
		assert.Equal(t, "r-next", waitSaved(t, mockCache))
	})
}

func TestPersistWorker_Stop(t *testing.T) {
	logger := zap.NewNop()
	mockCache := newMockRouteCache()
	worker := routecache.NewPersistWorker(mockCache, time.Minute, 8, logger)

	mockCache.On("SaveRoute", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// Записи, поставленные до запуска, дописываются при остановке
	assert.True(t, worker.Enqueue(testRoute("r-1")))
	assert.True(t, worker.Enqueue(testRoute("r-2")))

	done := make(chan struct{})
	go func() {
		worker.Start(context.Background())
		close(done)
	}()

	assert.NoError(t, worker.Stop())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop in time")
	}

	assert.Equal(t, "r-1", waitSaved(t, mockCache))
	assert.Equal(t, "r-2", waitSaved(t, mockCache))
	assert.True(t, worker.IsStopped())
}
