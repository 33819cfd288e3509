package dto

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon float64 `json:"lon" validate:"required,min=-180,max=180"`
}

// JourneyRequest - запрос на построение поездки. Форма запроса определяется
// наличием end/waypoints/target_distance:
//   - end задан, end != start, без waypoints  -> прямой маршрут
//   - end задан, end != start, с waypoints    -> маршрут через точки
//   - end совпадает со start (допуск 0.0001°) -> круг через waypoints
//   - end не задан, задан target_distance     -> круговой маршрут на дистанцию
type JourneyRequest struct {
	Start          Point   `json:"start" validate:"required"`
	End            *Point  `json:"end,omitempty" validate:"omitempty"`
	Waypoints      []Point `json:"waypoints,omitempty" validate:"omitempty,max=10,dive"`
	TargetDistance float64 `json:"target_distance,omitempty" validate:"omitempty,min=1000,max=100000"` // meters
}

// NearbyStationsRequest - запрос ближайших станций
type NearbyStationsRequest struct {
	Lat   float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon   float64 `json:"lon" validate:"required,min=-180,max=180"`
	Limit int     `json:"limit" validate:"omitempty,min=1,max=50"`
}
