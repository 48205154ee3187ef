package distance

import (
	"context"
	"math"

	"github.com/katalvlaran/colony/geo"
)

// PairKey identifies a directed origin→destination pair by coordinates
// rounded to five decimals (about one metre).
type PairKey struct {
	OriginLat, OriginLng float64
	DestLat, DestLng     float64
}

// Entry is one cached directed distance in kilometres.
type Entry struct {
	Key PairKey
	Km  float64
}

// Cache stores directed pair distances between runs.
type Cache interface {
	// GetBatch returns the cached subset of keys. Missing keys are absent
	// from the map, not an error.
	GetBatch(ctx context.Context, keys []PairKey) (map[PairKey]float64, error)
	SetBatch(ctx context.Context, entries []Entry) error
}

// RoundCoordinate rounds a degree value to five decimals.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// NewPairKey builds the rounded key for origin→dest.
func NewPairKey(origin, dest geo.Coordinates) PairKey {
	return PairKey{
		OriginLat: RoundCoordinate(origin.Lat),
		OriginLng: RoundCoordinate(origin.Lng),
		DestLat:   RoundCoordinate(dest.Lat),
		DestLng:   RoundCoordinate(dest.Lng),
	}
}

// self reports whether origin and destination round to the same point.
func (k PairKey) self() bool {
	return k.OriginLat == k.DestLat && k.OriginLng == k.DestLng
}
