package geo

import "math"

const earthRadiusMeters = 6371000

// Point is a decoded coordinate pair, in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the great-circle distance between two points in meters,
// using the haversine formula.
func Distance(p1, p2 Point) float64 {
	lat1Rad := p1.Lat * math.Pi / 180
	lat2Rad := p2.Lat * math.Pi / 180
	deltaLat := (p2.Lat - p1.Lat) * math.Pi / 180
	deltaLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Centroid returns the arithmetic mean of the given points.
// Adequate for route-sized extents, where the flat-earth error is negligible.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var latSum, lngSum float64
	for _, p := range points {
		latSum += p.Lat
		lngSum += p.Lng
	}
	return Point{
		Lat: latSum / float64(len(points)),
		Lng: lngSum / float64(len(points)),
	}
}
