package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/colony/aco"
	"github.com/katalvlaran/colony/distance"
	"github.com/katalvlaran/colony/geo"
	"github.com/katalvlaran/colony/matrix"
	"github.com/katalvlaran/colony/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := parseFlags(nil, 6)
	require.NoError(t, err)
	assert.Equal(t, aco.DefaultAnts, cfg.ants)
	assert.Equal(t, aco.DefaultIterations, cfg.iterations)
	assert.Equal(t, 6, cfg.workers)
	assert.Equal(t, providerHaversine, cfg.provider)
	assert.Nil(t, cfg.seed)

	opts := cfg.options()
	require.NoError(t, opts.Validate())
	assert.Nil(t, opts.Seed)
	assert.Nil(t, opts.OnIteration)
}

func TestParseFlags_Overrides(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-ants", "7", "-iterations", "9", "-alpha", "2", "-beta", "3", "-evaporation", "0.25",
		"-q", "10", "-seed", "0", "-workers", "2", "-provider", "osrm", "-db", "x.db", "-save", "-two-opt", "-v",
	}, 1)
	require.NoError(t, err)

	opts := cfg.options()
	assert.Equal(t, 7, opts.Ants)
	assert.Equal(t, 9, opts.Iterations)
	assert.Equal(t, 2.0, opts.Alpha)
	assert.Equal(t, 3.0, opts.Beta)
	assert.Equal(t, 0.25, opts.Evaporation)
	assert.Equal(t, 10.0, opts.Q)
	assert.Equal(t, 2, opts.Workers)
	require.NotNil(t, opts.Seed, "an explicit zero seed is still a fixed seed")
	assert.Equal(t, int64(0), *opts.Seed)
	assert.NotNil(t, opts.OnIteration)
	assert.True(t, cfg.save)
	assert.True(t, cfg.twoOpt)
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := parseFlags([]string{"-provider", "google"}, 1)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-save"}, 1)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-h"}, 1)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestLoadStops(t *testing.T) {
	stops, err := loadStops("")
	require.NoError(t, err)
	assert.Equal(t, geo.CampusStops(), stops)

	path := filepath.Join(t.TempDir(), "stops.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a","lat":1,"lng":2},{"name":"b","lat":1.5,"lng":2.5}]`), 0o600))
	stops, err = loadStops(path)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, geo.Stop{Name: "b", Coordinates: geo.Coordinates{Lat: 1.5, Lng: 2.5}}, stops[1])

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = loadStops(path)
	assert.Error(t, err)
}

func TestRun_HaversineAndSave(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "colony.db")
	seed := int64(5)
	cfg := config{
		ants: 6, iterations: 12, alpha: aco.DefaultAlpha, beta: aco.DefaultBeta,
		evaporation: aco.DefaultEvaporation, q: aco.DefaultQ, seed: &seed, workers: 2,
		provider: providerHaversine, dbPath: dbPath, save: true, twoOpt: true,
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))

	text := out.String()
	for _, want := range []string{"Host:", "Best route:", "Total distance:", "Mean of history:", "Improvement:", "2-opt route", "Matrix: min=", "Distance matrix (km):", "Saved run", "↩"} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, text, geo.CampusStops()[0].Name)

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs().List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, seed, runs[0].Seed)
	assert.Len(t, runs[0].Route, len(geo.CampusStops()))
}

func TestWriteMatrix_Unreachable(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0, 1.5}, {distance.UnreachableKm, 0}})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeMatrix(&out, m))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "1.500")
	assert.Contains(t, lines[2], "-")
	assert.NotContains(t, out.String(), "1000000000")
}

func TestSummaryHelpers(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 2.0, mean([]float64{1, 2, 3}))
	assert.Equal(t, 25.0, percentDrop(8, 6))
	assert.Equal(t, 0.0, percentDrop(0, 0))
	assert.Equal(t, "-", formatKm(distance.UnreachableKm))
	assert.Equal(t, "0.125", formatKm(0.125))
}
