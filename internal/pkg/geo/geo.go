package geo

import (
	"math"

	"github.com/bikeroute-microservice/internal/domain"
)

const earthRadiusM = 6371000.0

// Пороги предиката "почти одинаковые пути"
const (
	similarDistanceM = 10.0
	similarTimeMs    = 5000
)

// Классы дорог, засчитываемые как велоинфраструктура
var bikeRoadClasses = map[string]bool{
	"cycleway":      true,
	"path":          true,
	"track":         true,
	"living_street": true,
	"service":       true,
	"residential":   true,
}

// Параметры оценки уклона
const (
	gradientSmoothingWindow = 5
	gradientMinSegmentM     = 10.0
	gradientCeilingPercent  = 15.0
)

// Distance вычисляет расстояние между двумя точками в метрах (haversine)
func Distance(a, b domain.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	lat1Rad := a.Lat * math.Pi / 180.0
	lat2Rad := b.Lat * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// pointDistance - расстояние между двумя точками пути ([lon, lat, ...])
func pointDistance(a, b []float64) float64 {
	return Distance(
		domain.Coordinate{Lat: a[1], Lon: a[0]},
		domain.Coordinate{Lat: b[1], Lon: b[0]},
	)
}

// BoundingBox возвращает объединённый bbox по всем точкам всех путей.
// Для пустого набора точек возвращается нулевой bbox, это не ошибка.
func BoundingBox(paths []*domain.Path) domain.BoundingBox {
	var box domain.BoundingBox
	first := true

	for _, p := range paths {
		if p == nil {
			continue
		}
		for _, pt := range p.Points {
			if len(pt) < 2 {
				continue
			}
			lon, lat := pt[0], pt[1]
			if first {
				box = domain.BoundingBox{MinLat: lat, MinLon: lon, MaxLat: lat, MaxLon: lon}
				first = false
				continue
			}
			if lat < box.MinLat {
				box.MinLat = lat
			}
			if lat > box.MaxLat {
				box.MaxLat = lat
			}
			if lon < box.MinLon {
				box.MinLon = lon
			}
			if lon > box.MaxLon {
				box.MaxLon = lon
			}
		}
	}

	return box
}

// PathBoundingBox - bbox одного пути: берём bbox движка, если он есть,
// иначе считаем по точкам
func PathBoundingBox(p *domain.Path) domain.BoundingBox {
	if p == nil {
		return domain.BoundingBox{}
	}
	if len(p.BBox) == 4 {
		return domain.BoundingBox{
			MinLon: p.BBox[0],
			MinLat: p.BBox[1],
			MaxLon: p.BBox[2],
			MaxLat: p.BBox[3],
		}
	}
	return BoundingBox([]*domain.Path{p})
}

// BikeRoadRatio - доля пути (0..100), проходящая по велоинфраструктуре.
// Сначала засчитываются интервалы road_class из списка разрешённых классов,
// затем интервалы bike_network с непустым тегом, ещё не покрытые road_class.
func BikeRoadRatio(p *domain.Path) float64 {
	if p == nil || len(p.Points) < 2 || len(p.Details.RoadClass) == 0 {
		return 0
	}

	edgeCount := len(p.Points) - 1
	edgeDist := make([]float64, edgeCount)
	total := 0.0
	for i := 0; i < edgeCount; i++ {
		edgeDist[i] = pointDistance(p.Points[i], p.Points[i+1])
		total += edgeDist[i]
	}
	if total == 0 {
		return 0
	}

	counted := make([]bool, edgeCount)
	bikeDist := 0.0

	for _, iv := range p.Details.RoadClass {
		if !bikeRoadClasses[iv.Value] {
			continue
		}
		for e := iv.Start; e < iv.End && e < edgeCount; e++ {
			if e < 0 || counted[e] {
				continue
			}
			counted[e] = true
			bikeDist += edgeDist[e]
		}
	}

	for _, iv := range p.Details.BikeNetwork {
		if iv.Value == "" || iv.Value == "missing" {
			continue
		}
		for e := iv.Start; e < iv.End && e < edgeCount; e++ {
			if e < 0 || counted[e] {
				continue
			}
			counted[e] = true
			bikeDist += edgeDist[e]
		}
	}

	ratio := bikeDist / total * 100
	if ratio < 0 {
		return 0
	}
	if ratio > 100 {
		return 100
	}
	return ratio
}

// MaxGradient оценивает максимальный подъём и спуск пути в процентах.
// Высоты сглаживаются центрированным скользящим средним, затем скользящее
// окно накапливает дистанцию до минимальной длины сегмента и считает уклон
// по истинной горизонтальной проекции. Уклоны выше реалистичного потолка
// отбрасываются как шум данных высот.
func MaxGradient(p *domain.Path) (maxUphill, maxDownhill float64) {
	if p == nil || len(p.Points) < 2 {
		return 0, 0
	}

	n := len(p.Points)
	elevations := make([]float64, n)
	hasElevation := false
	for i, pt := range p.Points {
		if len(pt) >= 3 {
			elevations[i] = pt[2]
			hasElevation = true
		}
	}
	if !hasElevation {
		return 0, 0
	}

	smoothed := smoothElevations(elevations, gradientSmoothingWindow)

	// Префиксные дистанции по наклонной
	cum := make([]float64, n)
	for i := 1; i < n; i++ {
		cum[i] = cum[i-1] + pointDistance(p.Points[i-1], p.Points[i])
	}

	for i := 0; i < n-1; i++ {
		j := i + 1
		for j < n && cum[j]-cum[i] < gradientMinSegmentM {
			j++
		}
		if j >= n {
			break
		}

		slant := cum[j] - cum[i]
		delta := smoothed[j] - smoothed[i]
		horizontal := math.Sqrt(math.Max(slant*slant-delta*delta, 0))
		if horizontal == 0 {
			continue
		}

		gradient := delta / horizontal * 100
		if math.Abs(gradient) > gradientCeilingPercent {
			continue
		}
		if gradient > maxUphill {
			maxUphill = gradient
		}
		if -gradient > maxDownhill {
			maxDownhill = -gradient
		}
	}

	return math.Round(maxUphill*10) / 10, math.Round(maxDownhill*10) / 10
}

// smoothElevations - центрированное скользящее среднее; у краёв окно сужается
func smoothElevations(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		return values
	}
	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(values)-1 {
			hi = len(values) - 1
		}
		sum := 0.0
		for k := lo; k <= hi; k++ {
			sum += values[k]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// AreSimilarPaths - предикат почти-дубликата: пути считаются одинаковыми,
// если отличаются меньше чем на 10 м и 5 секунд
func AreSimilarPaths(a, b *domain.Path) bool {
	if a == nil || b == nil {
		return false
	}
	return math.Abs(a.Distance-b.Distance) < similarDistanceM &&
		absInt64(a.Time-b.Time) < similarTimeMs
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
