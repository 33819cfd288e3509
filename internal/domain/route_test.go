package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailInterval_UnmarshalJSON(t *testing.T) {
	t.Run("string label", func(t *testing.T) {
		var d DetailInterval
		require.NoError(t, json.Unmarshal([]byte(`[0, 5, "cycleway"]`), &d))

		assert.Equal(t, 0, d.Start)
		assert.Equal(t, 5, d.End)
		assert.Equal(t, "cycleway", d.Value)
	})

	t.Run("boolean label", func(t *testing.T) {
		var d DetailInterval
		require.NoError(t, json.Unmarshal([]byte(`[2, 7, true]`), &d))

		assert.Equal(t, "true", d.Value)
	})

	t.Run("false label stays empty", func(t *testing.T) {
		var d DetailInterval
		require.NoError(t, json.Unmarshal([]byte(`[2, 7, false]`), &d))

		assert.Equal(t, "", d.Value)
	})

	t.Run("null label", func(t *testing.T) {
		var d DetailInterval
		require.NoError(t, json.Unmarshal([]byte(`[1, 3, null]`), &d))

		assert.Equal(t, "", d.Value)
	})

	t.Run("wrong element count", func(t *testing.T) {
		var d DetailInterval
		assert.Error(t, json.Unmarshal([]byte(`[1, 3]`), &d))
	})
}

func TestDetailInterval_MarshalJSON(t *testing.T) {
	d := DetailInterval{Start: 0, End: 4, Value: "residential"}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `[0, 4, "residential"]`, string(data))
}

func TestPathDetails_RoundTrip(t *testing.T) {
	raw := `{"road_class":[[0,3,"cycleway"],[3,8,"primary"]],"bike_network":[[0,8,"lcn"]]}`

	var details PathDetails
	require.NoError(t, json.Unmarshal([]byte(raw), &details))

	require.Len(t, details.RoadClass, 2)
	assert.Equal(t, "cycleway", details.RoadClass[0].Value)
	assert.Equal(t, 8, details.RoadClass[1].End)
	require.Len(t, details.BikeNetwork, 1)
	assert.Equal(t, "lcn", details.BikeNetwork[0].Value)
}

func TestStation_Usable(t *testing.T) {
	t.Run("available with bikes", func(t *testing.T) {
		s := Station{Status: StationStatusAvailable, CurrentBikes: 3}
		assert.True(t, s.Usable())
	})

	t.Run("no bikes", func(t *testing.T) {
		s := Station{Status: StationStatusAvailable, CurrentBikes: 0}
		assert.False(t, s.Usable())
	})

	t.Run("wrong status", func(t *testing.T) {
		s := Station{Status: "maintenance", CurrentBikes: 5}
		assert.False(t, s.Usable())
	})
}

func TestBoundingBox_Union(t *testing.T) {
	a := BoundingBox{MinLat: 37.5, MinLon: 126.9, MaxLat: 37.6, MaxLon: 127.0}
	b := BoundingBox{MinLat: 37.4, MinLon: 126.95, MaxLat: 37.55, MaxLon: 127.1}

	union := a.Union(b)

	assert.Equal(t, 37.4, union.MinLat)
	assert.Equal(t, 126.9, union.MinLon)
	assert.Equal(t, 37.6, union.MaxLat)
	assert.Equal(t, 127.1, union.MaxLon)

	t.Run("union with zero box", func(t *testing.T) {
		var zero BoundingBox
		assert.Equal(t, a, zero.Union(a))
		assert.Equal(t, a, a.Union(zero))
	})
}
