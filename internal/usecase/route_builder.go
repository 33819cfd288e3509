package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/bikeroute-microservice/internal/domain"
	"github.com/bikeroute-microservice/internal/domain/repository"
	"github.com/bikeroute-microservice/internal/pkg/geo"
	"github.com/bikeroute-microservice/internal/usecase/dto"
)

// RouteBuilderUseCase собирает упорядоченные пешие и велосипедные плечи
// в единую поездку с агрегированными метриками.
type RouteBuilderUseCase struct {
	routingRepo repository.RoutingRepository
	logger      *zap.Logger
}

func NewRouteBuilderUseCase(
	routingRepo repository.RoutingRepository,
	logger *zap.Logger,
) *RouteBuilderUseCase {
	return &RouteBuilderUseCase{
		routingRepo: routingRepo,
		logger:      logger,
	}
}

// BuildSegment преобразует путь движка в сегмент поездки. Велосипедные
// сегменты дополнительно несут долю велодорожек и максимальный подъём;
// пешие - никогда.
func (uc *RouteBuilderUseCase) BuildSegment(segType string, p *domain.Path) dto.Segment {
	seg := dto.Segment{
		Type: segType,
		Summary: dto.SegmentSummary{
			Distance: p.Distance,
			Time:     p.Time,
			Ascent:   p.Ascent,
			Descent:  p.Descent,
		},
		BBox:         geo.PathBoundingBox(p),
		Geometry:     p.Points,
		Profile:      p.Profile,
		Instructions: p.Instructions,
	}

	if segType == domain.SegmentBiking {
		ratio := geo.BikeRoadRatio(p)
		maxUphill, _ := geo.MaxGradient(p)
		seg.Summary.BikeRoadRatio = &ratio
		seg.Summary.MaxGradient = &maxUphill
	}

	return seg
}

// BuildThreeLegRoute - фиксированная композиция пешком-велосипед-пешком
func (uc *RouteBuilderUseCase) BuildThreeLegRoute(
	walkToStart *domain.Path,
	bike *domain.CategorizedPath,
	walkFromEnd *domain.Path,
	startStation, endStation *domain.Station,
) dto.RouteDto {
	segments := []dto.Segment{
		uc.BuildSegment(domain.SegmentWalking, walkToStart),
		uc.BuildSegment(domain.SegmentBiking, &bike.Path),
		uc.BuildSegment(domain.SegmentWalking, walkFromEnd),
	}
	segments[1].StartStation = dto.ConvertStation(startStation)
	segments[1].EndStation = dto.ConvertStation(endStation)

	route := uc.assemble(segments, bike.RouteCategory)
	route.RouteID = bike.RouteID
	route.StartStation = dto.ConvertStation(startStation)
	route.EndStation = dto.ConvertStation(endStation)
	return route
}

// BuildFourLegRoundTrip - пешком-велосипед-велосипед-пешком с одной станцией;
// подъём на уровне поездки - максимум из двух велосипедных плеч
func (uc *RouteBuilderUseCase) BuildFourLegRoundTrip(
	walkToStation *domain.Path,
	bikeOut, bikeBack *domain.Path,
	walkToStart *domain.Path,
	station *domain.Station,
	category string,
) dto.RouteDto {
	segments := []dto.Segment{
		uc.BuildSegment(domain.SegmentWalking, walkToStation),
		uc.BuildSegment(domain.SegmentBiking, bikeOut),
		uc.BuildSegment(domain.SegmentBiking, bikeBack),
		uc.BuildSegment(domain.SegmentWalking, walkToStart),
	}
	segments[1].StartStation = dto.ConvertStation(station)
	segments[2].EndStation = dto.ConvertStation(station)

	route := uc.assemble(segments, category)
	route.StartStation = dto.ConvertStation(station)
	route.EndStation = dto.ConvertStation(station)
	return route
}

// MultiLegOptions - необязательная обвязка маршрута через точки
type MultiLegOptions struct {
	WalkToStart  *domain.Path
	WalkFromEnd  *domain.Path
	StartStation *domain.Station
	EndStation   *domain.Station
	RouteID      string
}

// BuildMultiLegRoute строит поездку по упорядоченным точкам: на каждую
// соседнюю пару запрашиваются альтернативы по обоим велосипедным профилям,
// из них правило категории выбирает одну. Это единственный поток, который
// дергает движок по-плечево: геометрию через несколько точек нельзя
// выразить одним запросом.
func (uc *RouteBuilderUseCase) BuildMultiLegRoute(
	ctx context.Context,
	points []domain.Coordinate,
	category string,
	opts MultiLegOptions,
) (*dto.RouteDto, error) {
	var segments []dto.Segment

	if opts.WalkToStart != nil {
		segments = append(segments, uc.BuildSegment(domain.SegmentWalking, opts.WalkToStart))
	}

	for i := 0; i+1 < len(points); i++ {
		candidates, err := uc.routingRepo.MultipleProfileRoutes(ctx, points[i], points[i+1])
		if err != nil {
			uc.logger.Error("Leg route request failed",
				zap.Int("leg_index", i),
				zap.String("category", category),
				zap.Error(err))
			return nil, err
		}

		leg := selectLegPath(candidates, category)
		seg := uc.BuildSegment(domain.SegmentBiking, leg)
		if i == 0 {
			seg.StartStation = dto.ConvertStation(opts.StartStation)
		}
		if i+2 == len(points) {
			seg.EndStation = dto.ConvertStation(opts.EndStation)
		}
		segments = append(segments, seg)
	}

	if opts.WalkFromEnd != nil {
		segments = append(segments, uc.BuildSegment(domain.SegmentWalking, opts.WalkFromEnd))
	}

	route := uc.assemble(segments, category)
	route.RouteID = opts.RouteID
	route.StartStation = dto.ConvertStation(opts.StartStation)
	route.EndStation = dto.ConvertStation(opts.EndStation)
	return &route, nil
}

// MergeRoundTrip склеивает поездки туда и обратно: сегменты в порядке
// туда-затем-обратно, bbox объединяется, доля велодорожек пересчитывается
// по всем велосипедным плечам обоих направлений.
func (uc *RouteBuilderUseCase) MergeRoundTrip(outbound, inbound dto.RouteDto) dto.RouteDto {
	segments := make([]dto.Segment, 0, len(outbound.Segments)+len(inbound.Segments))
	segments = append(segments, outbound.Segments...)
	segments = append(segments, inbound.Segments...)

	route := uc.assemble(segments, outbound.RouteCategory)
	route.RouteID = outbound.RouteID
	route.StartStation = outbound.StartStation
	route.EndStation = outbound.EndStation
	return route
}

// selectLegPath - правило выбора пути плеча для категории:
// приоритет велодорожек - самый быстрый safe_bike (или первый кандидат),
// кратчайший - минимум дистанции, быстрейший - минимум времени
func selectLegPath(candidates []*domain.Path, category string) *domain.Path {
	switch category {
	case domain.CategoryBikeLanePriority:
		var best *domain.Path
		for _, p := range candidates {
			if p.Profile != domain.ProfileSafeBike {
				continue
			}
			if best == nil || p.Time < best.Time {
				best = p
			}
		}
		if best != nil {
			return best
		}
		return candidates[0]

	case domain.CategoryShortestDistance:
		best := candidates[0]
		for _, p := range candidates[1:] {
			if p.Distance < best.Distance {
				best = p
			}
		}
		return best

	default: // fastest
		best := candidates[0]
		for _, p := range candidates[1:] {
			if p.Time < best.Time {
				best = p
			}
		}
		return best
	}
}

// assemble агрегирует сегменты в поездку: дистанция/время/набор/спуск
// суммируются по всем плечам, доля велодорожек - взвешенное среднее по
// велосипедным плечам, подъём - максимум по ним, bbox - объединение.
func (uc *RouteBuilderUseCase) assemble(segments []dto.Segment, category string) dto.RouteDto {
	var summary dto.SegmentSummary
	var bbox domain.BoundingBox

	bikeDistance := 0.0
	weightedRatio := 0.0
	maxGradient := 0.0
	hasBike := false

	for _, seg := range segments {
		summary.Distance += seg.Summary.Distance
		summary.Time += seg.Summary.Time
		summary.Ascent += seg.Summary.Ascent
		summary.Descent += seg.Summary.Descent
		bbox = bbox.Union(seg.BBox)

		if seg.Type != domain.SegmentBiking {
			continue
		}
		hasBike = true
		if seg.Summary.BikeRoadRatio != nil {
			bikeDistance += seg.Summary.Distance
			weightedRatio += seg.Summary.Distance * (*seg.Summary.BikeRoadRatio)
		}
		if seg.Summary.MaxGradient != nil && *seg.Summary.MaxGradient > maxGradient {
			maxGradient = *seg.Summary.MaxGradient
		}
	}

	if hasBike {
		ratio := 0.0
		if bikeDistance > 0 {
			ratio = weightedRatio / bikeDistance
		}
		summary.BikeRoadRatio = &ratio
		summary.MaxGradient = &maxGradient
	}

	return dto.RouteDto{
		RouteCategory: category,
		Summary:       summary,
		BBox:          bbox,
		Segments:      segments,
	}
}
