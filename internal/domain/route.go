package domain

import (
	"encoding/json"
	"fmt"
)

// Профили движка маршрутизации
const (
	ProfileSafeBike = "safe_bike"
	ProfileFastBike = "fast_bike"
	ProfileFoot     = "foot"
)

// BikeProfiles - фиксированный набор велосипедных профилей для мультипрофильных запросов
var BikeProfiles = []string{ProfileSafeBike, ProfileFastBike}

// Категории маршрутов в фиксированном порядке выдачи
const (
	CategoryBikeLanePriority = "bike_lane_priority"
	CategoryShortestDistance = "shortest_distance"
	CategoryFastest          = "fastest"
)

var RouteCategories = []string{
	CategoryBikeLanePriority,
	CategoryShortestDistance,
	CategoryFastest,
}

// Типы сегментов маршрута
const (
	SegmentWalking = "walking"
	SegmentBiking  = "biking"
)

// Instruction - один шаг пошаговой навигации
type Instruction struct {
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
	Time     int64   `json:"time"`
	Sign     int     `json:"sign"`
	Interval []int   `json:"interval,omitempty"`
}

// DetailInterval - интервальная аннотация пути: [startPointIndex, endPointIndex, label].
// Движок кодирует её смешанным JSON-массивом, поэтому нужен свой (un)marshal.
type DetailInterval struct {
	Start int
	End   int
	Value string
}

func (d *DetailInterval) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("detail interval: expected 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &d.Start); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &d.End); err != nil {
		return err
	}
	// Метка может быть строкой, null или булевым флагом (bike_network)
	if err := json.Unmarshal(raw[2], &d.Value); err != nil {
		var b bool
		if err2 := json.Unmarshal(raw[2], &b); err2 == nil {
			if b {
				d.Value = "true"
			}
			return nil
		}
		var null interface{}
		if err3 := json.Unmarshal(raw[2], &null); err3 == nil && null == nil {
			d.Value = ""
			return nil
		}
		return err
	}
	return nil
}

func (d DetailInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{d.Start, d.End, d.Value})
}

// PathDetails - интервальные аннотации, запрошенные у движка
type PathDetails struct {
	RoadClass   []DetailInterval `json:"road_class,omitempty"`
	BikeNetwork []DetailInterval `json:"bike_network,omitempty"`
}

// Path - одна альтернатива из ответа движка маршрутизации.
// Точки хранятся как [lon, lat, elevation?]. Создаётся на каждый вызов движка
// и не изменяется, только преобразуется в DTO.
type Path struct {
	Distance     float64       `json:"distance"` // метры
	Time         int64         `json:"time"`     // миллисекунды
	Ascent       float64       `json:"ascent"`
	Descent      float64       `json:"descent"`
	Points       [][]float64   `json:"points"`
	BBox         []float64     `json:"bbox,omitempty"` // [minLon, minLat, maxLon, maxLat]
	Instructions []Instruction `json:"instructions,omitempty"`
	Details      PathDetails   `json:"details"`
	Profile      string        `json:"profile"`
}

// CategorizedPath - путь, выбранный оптимизатором для одной из категорий.
// Одна запись на категорию сохраняется в кеше под ключом route:{route_id}.
type CategorizedPath struct {
	Path
	RouteCategory string  `json:"route_category"`
	BikeRoadRatio float64 `json:"bike_road_ratio"`
	RouteID       string  `json:"route_id"`
}
