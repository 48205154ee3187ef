package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/colony/matrix"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Sentinel errors.
var (
	ErrNoStops        = errors.New("geo: no stops")
	ErrEmptyName      = errors.New("geo: stop name is empty")
	ErrDuplicateName  = errors.New("geo: duplicate stop name")
	ErrBadCoordinates = errors.New("geo: coordinates out of range")
)

// Coordinates is a WGS-84 position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate reports whether c is a finite position on the globe.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("lat=%g lng=%g: %w", c.Lat, c.Lng, ErrBadCoordinates)
	}

	return nil
}

// Stop is a named place on a route.
type Stop struct {
	Name string `json:"name"`
	Coordinates
}

// Haversine returns the great-circle distance between a and b in kilometres.
// The result is symmetric and exactly 0 for identical inputs.
func Haversine(a, b Coordinates) float64 {
	if a == b {
		return 0
	}
	lat1, lat2 := a.Lat*math.Pi/180, b.Lat*math.Pi/180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// HaversineMatrix returns the pairwise great-circle distances of stops and
// their labels in input order. Each pair is computed once and mirrored, so
// the matrix is exactly symmetric with a zero diagonal.
//
// Complexity: O(n²).
func HaversineMatrix(stops []Stop) (*matrix.Dense, []string, error) {
	labels, err := Labels(stops)
	if err != nil {
		return nil, nil, err
	}
	n := len(stops)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = Haversine(stops[i].Coordinates, stops[j].Coordinates)
			_ = m.Set(i, j, d)
			_ = m.Set(j, i, d)
		}
	}

	return m, labels, nil
}

// Labels validates stops and returns their names in order.
func Labels(stops []Stop) ([]string, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	labels := make([]string, len(stops))
	seen := make(map[string]int, len(stops))
	for i, s := range stops {
		if s.Name == "" {
			return nil, fmt.Errorf("stop %d: %w", i, ErrEmptyName)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("stop %d %q (first at %d): %w", i, s.Name, prev, ErrDuplicateName)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("stop %d %q: %w", i, s.Name, err)
		}
		seen[s.Name] = i
		labels[i] = s.Name
	}

	return labels, nil
}
