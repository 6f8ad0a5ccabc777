package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// DecodePolyline decodes a Google encoded polyline string (1e-5 precision)
// into an ordered sequence of points. A malformed or truncated polyline
// yields an error and no points; an empty string yields no points and no
// error. Callers are expected to treat a failed decode as "no geometry
// available" for that activity, not as a fatal condition.
func DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, nil
	}

	coords, remaining, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(remaining))
	}

	points := make([]Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, Point{Lat: c[0], Lng: c[1]})
	}
	return points, nil
}
