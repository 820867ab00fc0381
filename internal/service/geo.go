package service

import (
	"math"

	"github.com/havenhq/haven/api/internal/model"
)

// GeoService handles geographic calculations
type GeoService struct{}

// NewGeoService creates a new geo service
func NewGeoService() *GeoService {
	return &GeoService{}
}

// EarthRadiusKm is the Earth's radius in kilometers
const EarthRadiusKm = 6371.0

// HaversineDistance calculates the distance between two points in kilometers
// using the Haversine formula (accounts for Earth's curvature)
func (s *GeoService) HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceBetweenLocations calculates the distance between two stored
// locations in kilometers.
func (s *GeoService) DistanceBetweenLocations(loc1, loc2 model.Location) float64 {
	return s.HaversineDistance(loc1.Lat, loc1.Lng, loc2.Lat, loc2.Lng)
}

// IsWithinRadius checks if a point is within a given radius of another point.
// The boundary is inclusive: a point exactly at the radius is within it.
func (s *GeoService) IsWithinRadius(centerLat, centerLng, pointLat, pointLng, radiusKm float64) bool {
	distance := s.HaversineDistance(centerLat, centerLng, pointLat, pointLng)
	return distance <= radiusKm
}
