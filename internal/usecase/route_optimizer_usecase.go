package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/geo"
)

// RoutePersister - best-effort постановка выбранного маршрута на сохранение;
// сбои не влияют на результат оптимизации
type RoutePersister interface {
	Enqueue(route *domain.CategorizedPath) bool
}

// RouteOptimizerUseCase выбирает из пула альтернатив не более трёх
// представителей фиксированных категорий, подавляя почти-дубликаты,
// и сохраняет каждого под свежим route_id.
type RouteOptimizerUseCase struct {
	routingRepo      repository.RoutingRepository
	persister        RoutePersister
	logger           *zap.Logger
	windowRatio      float64
	maxAttempts      int
	targetCandidates int
}

func NewRouteOptimizerUseCase(
	routingRepo repository.RoutingRepository,
	persister RoutePersister,
	logger *zap.Logger,
	windowRatio float64,
	maxAttempts int,
	targetCandidates int,
) *RouteOptimizerUseCase {
	if windowRatio == 0 {
		windowRatio = 0.1
	}
	if maxAttempts == 0 {
		maxAttempts = 10
	}
	if targetCandidates == 0 {
		targetCandidates = 3
	}
	return &RouteOptimizerUseCase{
		routingRepo:      routingRepo,
		persister:        persister,
		logger:           logger,
		windowRatio:      windowRatio,
		maxAttempts:      maxAttempts,
		targetCandidates: targetCandidates,
	}
}

// SelectOptimal выбирает представителей категорий в фиксированном порядке:
// приоритет велодорожек, кратчайший, быстрейший. Кандидат, почти совпадающий
// с уже выбранным (AreSimilarPaths), пропускается; исчерпанная категория
// просто опускается.
func (uc *RouteOptimizerUseCase) SelectOptimal(ctx context.Context, paths []*domain.Path) []*domain.CategorizedPath {
	if len(paths) == 0 {
		return nil
	}

	ratios := make([]float64, len(paths))
	for i, p := range paths {
		ratios[i] = geo.BikeRoadRatio(p)
	}

	var selected []*domain.CategorizedPath
	var selectedPaths []*domain.Path

	notPicked := func(p *domain.Path) bool {
		for _, prev := range selectedPaths {
			if geo.AreSimilarPaths(p, prev) {
				return false
			}
		}
		return true
	}

	pick := func(category string, better func(i, j int) bool, eligible func(i int) bool) {
		best := -1
		for i, p := range paths {
			if !eligible(i) || !notPicked(p) {
				continue
			}
			if best == -1 || better(i, best) {
				best = i
			}
		}
		if best == -1 {
			return
		}

		cp := &domain.CategorizedPath{
			Path:          *paths[best],
			RouteCategory: category,
			BikeRoadRatio: math.Round(ratios[best]*10) / 10,
			RouteID:       uc.mintRouteID(paths[best]),
		}
		selected = append(selected, cp)
		selectedPaths = append(selectedPaths, paths[best])

		uc.persist(cp)
	}

	// Приоритет велодорожек: safe_bike с минимальным временем,
	// при отсутствии safe_bike - первый путь пула
	hasSafe := false
	for _, p := range paths {
		if p.Profile == domain.ProfileSafeBike {
			hasSafe = true
			break
		}
	}
	if hasSafe {
		pick(domain.CategoryBikeLanePriority,
			func(i, j int) bool { return paths[i].Time < paths[j].Time },
			func(i int) bool { return paths[i].Profile == domain.ProfileSafeBike })
	} else {
		pick(domain.CategoryBikeLanePriority,
			func(i, j int) bool { return false }, // первый подходящий
			func(i int) bool { return true })
	}

	pick(domain.CategoryShortestDistance,
		func(i, j int) bool { return paths[i].Distance < paths[j].Distance },
		func(i int) bool { return true })

	pick(domain.CategoryFastest,
		func(i, j int) bool { return paths[i].Time < paths[j].Time },
		func(i int) bool { return true })

	return selected
}

// OptimalCircularRoutes собирает до targetCandidates различных круговых
// маршрутов в окне ±windowRatio от целевой дистанции, не более maxAttempts
// обращений к движку, затем прогоняет их через SelectOptimal.
// Меньше трёх (вплоть до нуля) результатов - валидный исход.
func (uc *RouteOptimizerUseCase) OptimalCircularRoutes(ctx context.Context, start domain.Coordinate, targetDistanceMeters float64) []*domain.CategorizedPath {
	minDist := targetDistanceMeters * (1 - uc.windowRatio)
	maxDist := targetDistanceMeters * (1 + uc.windowRatio)

	var candidates []*domain.Path

	for attempt := 0; attempt < uc.maxAttempts && len(candidates) < uc.targetCandidates; attempt++ {
		paths, err := uc.routingRepo.CircularRoutes(ctx, start, targetDistanceMeters)
		if err != nil {
			uc.logger.Warn("Circular route attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		for _, p := range paths {
			if p.Distance < minDist || p.Distance > maxDist {
				continue
			}
			duplicate := false
			for _, kept := range candidates {
				if geo.AreSimilarPaths(p, kept) {
					duplicate = true
					break
				}
			}
			if duplicate {
				continue
			}
			candidates = append(candidates, p)
			if len(candidates) >= uc.targetCandidates {
				break
			}
		}
	}

	uc.logger.Debug("Circular candidates collected",
		zap.Int("count", len(candidates)),
		zap.Float64("target_distance", targetDistanceMeters))

	return uc.SelectOptimal(ctx, candidates)
}

// mintRouteID - случайный уникальный токен плюс короткий суффикс,
// производный от содержимого пути
func (uc *RouteOptimizerUseCase) mintRouteID(p *domain.Path) string {
	h := fnv.New32a()
	for _, pt := range p.Points {
		for _, v := range pt {
			fmt.Fprintf(h, "%.6f,", v)
		}
	}
	fmt.Fprintf(h, "%f:%d:%s", p.Distance, p.Time, p.Profile)

	return fmt.Sprintf("%s-%08x", uuid.NewString(), h.Sum32())
}

func (uc *RouteOptimizerUseCase) persist(route *domain.CategorizedPath) {
	if uc.persister == nil {
		return
	}
	if !uc.persister.Enqueue(route) {
		uc.logger.Warn("Route not persisted",
			zap.String("route_id", route.RouteID),
			zap.String("category", route.RouteCategory))
	}
}
