package domain

// Station - снимок станции велопроката из инвентаря.
// Ядро маршрутизации никогда не изменяет состояние станции.
type Station struct {
	Number       int     `json:"number" db:"number"`
	Name         string  `json:"name" db:"name"`
	Lat          float64 `json:"lat" db:"lat"`
	Lon          float64 `json:"lon" db:"lon"`
	CurrentBikes int     `json:"current_bikes" db:"current_bikes"`
	Status       string  `json:"status" db:"status"`
}

const StationStatusAvailable = "available"

func (s *Station) Coordinate() Coordinate {
	return Coordinate{Lat: s.Lat, Lon: s.Lon}
}

// Usable - станция доступна и на ней есть хотя бы один велосипед
func (s *Station) Usable() bool {
	return s.Status == StationStatusAvailable && s.CurrentBikes > 0
}
