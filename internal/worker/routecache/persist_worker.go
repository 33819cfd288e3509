package routecache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/worker"
)

// PersistWorker пишет выбранные оптимизатором маршруты в кеш в фоне.
// Запись best-effort: переполнение очереди и ошибки записи логируются
// и никогда не влияют на ответ запроса.
type PersistWorker struct {
	*worker.BaseWorker
	routeCache repository.RouteCacheRepository
	queue      chan *domain.CategorizedPath
	ttl        time.Duration
}

func NewPersistWorker(
	routeCache repository.RouteCacheRepository,
	ttl time.Duration,
	queueSize int,
	logger *zap.Logger,
) *PersistWorker {
	return &PersistWorker{
		BaseWorker: worker.NewBaseWorker("route-cache-persister", logger),
		routeCache: routeCache,
		queue:      make(chan *domain.CategorizedPath, queueSize),
		ttl:        ttl,
	}
}

// Enqueue - неблокирующая постановка маршрута на сохранение.
// Возвращает false, если очередь переполнена
func (w *PersistWorker) Enqueue(route *domain.CategorizedPath) bool {
	select {
	case w.queue <- route:
		return true
	default:
		w.Logger().Warn("Route persist queue full, dropping record",
			zap.String("route_id", route.RouteID))
		return false
	}
}

// Start запускает цикл записи; блокируется до Stop или отмены контекста
func (w *PersistWorker) Start(ctx context.Context) {
	w.Logger().Info("Route persist worker started", zap.String("name", w.Name()))

	for {
		select {
		case route := <-w.queue:
			w.persist(ctx, route)
		case <-w.StopChan():
			w.drain(ctx)
			w.Logger().Info("Route persist worker stopped")
			return
		case <-ctx.Done():
			w.Logger().Info("Route persist worker context cancelled")
			return
		}
	}
}

// drain дописывает оставшиеся записи при остановке
func (w *PersistWorker) drain(ctx context.Context) {
	for {
		select {
		case route := <-w.queue:
			w.persist(ctx, route)
		default:
			return
		}
	}
}

func (w *PersistWorker) persist(ctx context.Context, route *domain.CategorizedPath) {
	saveCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := w.routeCache.SaveRoute(saveCtx, route, w.ttl); err != nil {
		// Ошибка записи проглатывается: результат категории валиден и без кеша
		w.Logger().Warn("Failed to persist route",
			zap.String("route_id", route.RouteID),
			zap.String("category", route.RouteCategory),
			zap.Error(err))
	}
}
