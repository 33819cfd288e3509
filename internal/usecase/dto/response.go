package dto

import "github.com/bikeroute-microservice/internal/domain"

// SegmentSummary - агрегированные метрики одного сегмента
type SegmentSummary struct {
	Distance      float64  `json:"distance"` // meters
	Time          int64    `json:"time"`     // milliseconds
	Ascent        float64  `json:"ascent"`
	Descent       float64  `json:"descent"`
	BikeRoadRatio *float64 `json:"bike_road_ratio,omitempty"` // только biking
	MaxGradient   *float64 `json:"max_gradient,omitempty"`    // только biking, uphill
}

// Segment - одно плечо поездки (пешком или на велосипеде)
type Segment struct {
	Type         string               `json:"type"` // walking | biking
	Summary      SegmentSummary       `json:"summary"`
	BBox         domain.BoundingBox   `json:"bbox"`
	Geometry     [][]float64          `json:"geometry"` // [lon, lat, elevation?]
	Profile      string               `json:"profile,omitempty"`
	StartStation *StationDto          `json:"start_station,omitempty"`
	EndStation   *StationDto          `json:"end_station,omitempty"`
	Instructions []domain.Instruction `json:"instructions,omitempty"`
}

// RouteDto - собранная поездка одной категории
type RouteDto struct {
	RouteCategory string             `json:"route_category"`
	RouteID       string             `json:"route_id,omitempty"`
	Summary       SegmentSummary     `json:"summary"`
	BBox          domain.BoundingBox `json:"bbox"`
	StartStation  *StationDto        `json:"start_station,omitempty"`
	EndStation    *StationDto        `json:"end_station,omitempty"`
	Segments      []Segment          `json:"segments"`
}

// JourneyResponse - упорядоченный набор поездок по категориям
type JourneyResponse struct {
	Routes []RouteDto `json:"routes"`
	TookMs int64      `json:"took_ms"`
}

// StationDto - станция в ответе API
type StationDto struct {
	Number       int     `json:"number"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	CurrentBikes int     `json:"current_bikes"`
}

func ConvertStation(s *domain.Station) *StationDto {
	if s == nil {
		return nil
	}
	return &StationDto{
		Number:       s.Number,
		Name:         s.Name,
		Lat:          s.Lat,
		Lon:          s.Lon,
		CurrentBikes: s.CurrentBikes,
	}
}

// NearbyStationsResponse - ответ на поиск ближайших станций
type NearbyStationsResponse struct {
	Stations []StationWithDistance `json:"stations"`
}

// StationWithDistance - станция с расстоянием до точки поиска
type StationWithDistance struct {
	StationDto
	Distance float64 `json:"distance"` // meters
}
