// Package geo turns named stops with WGS-84 coordinates into a distance
// matrix the colony can consume.
//
// What:
//
//   - Coordinates and Stop describe a place on the globe.
//   - Haversine returns the great-circle distance between two places in km.
//   - HaversineMatrix builds the symmetric, zero-diagonal matrix of all pairs.
//   - CampusStops returns a ten-stop ring-bus sample set.
//
// Errors:
//
//   - ErrNoStops         - empty input.
//   - ErrEmptyName       - a stop without a name.
//   - ErrDuplicateName   - two stops share a name (labels must be unique).
//   - ErrBadCoordinates  - latitude outside [-90,90], longitude outside
//     [-180,180], or a non-finite value.
//
// The package performs no I/O and never logs.
package geo
