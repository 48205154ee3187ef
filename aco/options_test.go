package aco_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/colony/aco"
	"github.com/katalvlaran/colony/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := aco.DefaultOptions()
	assert.Equal(t, aco.DefaultAnts, o.Ants)
	assert.Equal(t, aco.DefaultIterations, o.Iterations)
	assert.Equal(t, aco.DefaultAlpha, o.Alpha)
	assert.Equal(t, aco.DefaultBeta, o.Beta)
	assert.Equal(t, aco.DefaultEvaporation, o.Evaporation)
	assert.Equal(t, aco.DefaultQ, o.Q)
	assert.Equal(t, aco.DefaultWorkers, o.Workers)
	assert.Equal(t, matrix.DefaultSymmetryTol, o.SymmetryTol)
	assert.Nil(t, o.Seed)
	assert.Nil(t, o.OnIteration)
	require.NoError(t, o.Validate())
}

func TestNewOptions_Overrides(t *testing.T) {
	o := aco.NewOptions(
		aco.WithAnts(3), aco.WithIterations(7), aco.WithAlpha(0.5), aco.WithBeta(2),
		aco.WithEvaporation(0.1), aco.WithQ(1), aco.WithSeed(5), aco.WithWorkers(4),
		aco.WithSymmetryTol(1e-6),
	)
	assert.Equal(t, 3, o.Ants)
	assert.Equal(t, 7, o.Iterations)
	assert.Equal(t, 0.5, o.Alpha)
	assert.Equal(t, 2.0, o.Beta)
	assert.Equal(t, 0.1, o.Evaporation)
	assert.Equal(t, 1.0, o.Q)
	require.NotNil(t, o.Seed)
	assert.Equal(t, int64(5), *o.Seed)
	assert.Equal(t, 4, o.Workers)
	assert.Equal(t, 1e-6, o.SymmetryTol)
	require.NoError(t, o.Validate())
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name  string
		opt   aco.Option
		cause error
	}{
		{"ants 0", aco.WithAnts(0), aco.ErrBadAnts},
		{"ants negative", aco.WithAnts(-2), aco.ErrBadAnts},
		{"iterations 0", aco.WithIterations(0), aco.ErrBadIterations},
		{"alpha negative", aco.WithAlpha(-1), aco.ErrBadExponent},
		{"alpha NaN", aco.WithAlpha(nan), aco.ErrBadExponent},
		{"beta Inf", aco.WithBeta(inf), aco.ErrBadExponent},
		{"evaporation negative", aco.WithEvaporation(-0.01), aco.ErrBadEvaporation},
		{"evaporation above one", aco.WithEvaporation(1.01), aco.ErrBadEvaporation},
		{"evaporation NaN", aco.WithEvaporation(nan), aco.ErrBadEvaporation},
		{"q zero", aco.WithQ(0), aco.ErrBadQ},
		{"q Inf", aco.WithQ(inf), aco.ErrBadQ},
		{"workers negative", aco.WithWorkers(-1), aco.ErrBadWorkers},
		{"tolerance negative", aco.WithSymmetryTol(-1e-9), aco.ErrBadTolerance},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := aco.NewOptions(tc.opt).Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, aco.ErrConfiguration))
			require.True(t, errors.Is(err, tc.cause))
			require.False(t, errors.Is(err, aco.ErrValidation))
		})
	}
}

// Boundary values that must be accepted.
func TestOptions_ValidateBoundaries(t *testing.T) {
	for _, opt := range []aco.Option{
		aco.WithAlpha(0), aco.WithBeta(0), aco.WithEvaporation(0), aco.WithEvaporation(1),
		aco.WithWorkers(0), aco.WithSymmetryTol(0), aco.WithAnts(1), aco.WithIterations(1),
	} {
		require.NoError(t, aco.NewOptions(opt).Validate())
	}
}
