package analytics

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"estatepulse/server/internal/models"
)

// GeoSummarize computes the bounding box and centroid of the located
// properties for the dashboard map. Properties without coordinates are
// counted but do not contribute to the geometry.
func GeoSummarize(properties []models.PropertyRecord) models.GeoSummary {
	summary := models.GeoSummary{PropertyCount: len(properties)}

	var points orb.MultiPoint
	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		points = append(points, orb.Point{*p.Longitude, *p.Latitude})
	}
	summary.LocatedCount = len(points)
	if len(points) == 0 {
		return summary
	}

	bound := points.Bound()
	center := bound.Center()
	summary.CenterLatitude = center.Lat()
	summary.CenterLongitude = center.Lon()
	summary.MinLatitude = bound.Min.Lat()
	summary.MaxLatitude = bound.Max.Lat()
	summary.MinLongitude = bound.Min.Lon()
	summary.MaxLongitude = bound.Max.Lon()
	return summary
}

// GeoFeatures renders the located properties as a GeoJSON feature collection
// for map layers.
func GeoFeatures(properties []models.PropertyRecord) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		feature := geojson.NewFeature(orb.Point{*p.Longitude, *p.Latitude})
		feature.Properties["id"] = p.ID
		feature.Properties["name"] = p.Name
		feature.Properties["asset_value"] = p.AssetValue
		feature.Properties["esg_score"] = p.EsgScore
		fc.Append(feature)
	}
	return fc
}
