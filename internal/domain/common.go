package domain

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func (b BoundingBox) IsZero() bool {
	return b.MinLat == 0 && b.MinLon == 0 && b.MaxLat == 0 && b.MaxLon == 0
}

// Union расширяет bbox так, чтобы он покрывал other
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if other.IsZero() {
		return b
	}
	if b.IsZero() {
		return other
	}
	out := b
	if other.MinLat < out.MinLat {
		out.MinLat = other.MinLat
	}
	if other.MinLon < out.MinLon {
		out.MinLon = other.MinLon
	}
	if other.MaxLat > out.MaxLat {
		out.MaxLat = other.MaxLat
	}
	if other.MaxLon > out.MaxLon {
		out.MaxLon = other.MaxLon
	}
	return out
}
