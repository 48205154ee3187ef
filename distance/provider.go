// Package distance resolves a list of named stops into the square distance
// table consumed by the colony.
//
// Two providers are available:
//
//   - NewHaversineProvider: great-circle kilometres, no I/O.
//   - NewOSRMProvider: road kilometres from an OSRM /table service, backed by
//     an optional pair cache (store.DistanceCache satisfies Cache).
//
// Every Table has a zero diagonal and is exactly symmetric, so it always
// passes matrix.ValidateDistance. Pairs the road network cannot connect are
// reported as UnreachableKm.
package distance

import (
	"context"

	"github.com/katalvlaran/colony/geo"
	"github.com/katalvlaran/colony/matrix"
)

// UnreachableKm marks a pair with no road connection. It is finite, so the
// table stays valid while the colony naturally avoids the edge.
const UnreachableKm = 1e9

// Table is a resolved distance table. Labels[i] names row and column i.
type Table struct {
	Labels []string
	Matrix *matrix.Dense
}

// Provider resolves stops into a Table.
type Provider interface {
	Table(ctx context.Context, stops []geo.Stop) (Table, error)
}

type haversineProvider struct{}

// NewHaversineProvider returns a Provider computing great-circle distances.
func NewHaversineProvider() Provider {
	return haversineProvider{}
}

func (haversineProvider) Table(ctx context.Context, stops []geo.Stop) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	m, labels, err := geo.HaversineMatrix(stops)
	if err != nil {
		return Table{}, err
	}

	return Table{Labels: labels, Matrix: m}, nil
}
