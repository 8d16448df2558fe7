package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estatepulse/server/internal/models"
)

func TestGeoSummarize(t *testing.T) {
	lat1, lon1 := 52.370216, 4.895168
	lat2, lon2 := 51.924419, 4.477733
	properties := []models.PropertyRecord{
		{ID: 1, Latitude: &lat1, Longitude: &lon1},
		{ID: 2, Latitude: &lat2, Longitude: &lon2},
		{ID: 3}, // no coordinates
	}

	summary := GeoSummarize(properties)
	assert.Equal(t, 3, summary.PropertyCount)
	assert.Equal(t, 2, summary.LocatedCount)
	assert.Equal(t, lat2, summary.MinLatitude)
	assert.Equal(t, lat1, summary.MaxLatitude)
	assert.Equal(t, lon2, summary.MinLongitude)
	assert.Equal(t, lon1, summary.MaxLongitude)
	assert.InDelta(t, (lat1+lat2)/2, summary.CenterLatitude, 1e-9)
	assert.InDelta(t, (lon1+lon2)/2, summary.CenterLongitude, 1e-9)
}

func TestGeoSummarize_NoCoordinates(t *testing.T) {
	summary := GeoSummarize([]models.PropertyRecord{{ID: 1}})
	assert.Equal(t, 1, summary.PropertyCount)
	assert.Equal(t, 0, summary.LocatedCount)
	assert.Equal(t, 0.0, summary.CenterLatitude)
}

func TestGeoFeatures(t *testing.T) {
	lat, lon := 52.1, 4.9
	properties := []models.PropertyRecord{
		{ID: 1, Name: "Located", Latitude: &lat, Longitude: &lon, AssetValue: 1000000},
		{ID: 2, Name: "Unlocated"},
	}

	fc := GeoFeatures(properties)
	assert.Len(t, fc.Features, 1)
	assert.Equal(t, "Located", fc.Features[0].Properties["name"])
}
