// Command colony plans a closed bus route over a set of stops with the ant
// colony optimizer and prints a report.
//
// Usage:
//
//	colony [flags]
//
// Stops are read from a JSON file (-stops) holding
// [{"name": "...", "lat": 40.22, "lng": 28.88}, ...]; without it the
// built-in ten-stop campus sample is used. Distances come from the
// great-circle provider (-provider haversine, default) or an OSRM server
// (-provider osrm), whose answers are cached in the SQLite file given by -db.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/katalvlaran/colony/aco"
	"github.com/katalvlaran/colony/distance"
	"github.com/katalvlaran/colony/geo"
	"github.com/katalvlaran/colony/store"
	"github.com/shirou/gopsutil/cpu"
)

const (
	providerHaversine = "haversine"
	providerOSRM      = "osrm"
)

type config struct {
	ants        int
	iterations  int
	alpha       float64
	beta        float64
	evaporation float64
	q           float64
	seed        *int64
	workers     int

	provider  string
	osrmURL   string
	dbPath    string
	stopsPath string
	save      bool
	twoOpt    bool
	normalize bool
	verbose   bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:], defaultWorkers())
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Printf("[ERROR] %v", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// defaultWorkers is the number of logical CPUs, or 1 when it cannot be read.
func defaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 1
	}

	return n
}

func parseFlags(args []string, workers int) (config, error) {
	var (
		cfg  config
		seed int64
		fs   = flag.NewFlagSet("colony", flag.ContinueOnError)
	)
	fs.IntVar(&cfg.ants, "ants", aco.DefaultAnts, "Number of ants per iteration")
	fs.IntVar(&cfg.iterations, "iterations", aco.DefaultIterations, "Number of iterations")
	fs.Float64Var(&cfg.alpha, "alpha", aco.DefaultAlpha, "Pheromone influence exponent")
	fs.Float64Var(&cfg.beta, "beta", aco.DefaultBeta, "Distance influence exponent")
	fs.Float64Var(&cfg.evaporation, "evaporation", aco.DefaultEvaporation, "Fraction of pheromone evaporated per iteration, in [0,1]")
	fs.Float64Var(&cfg.q, "q", aco.DefaultQ, "Pheromone deposit constant")
	fs.Int64Var(&seed, "seed", 0, "Random seed. By default a fresh seed is drawn and printed")
	fs.IntVar(&cfg.workers, "workers", workers, "Ants built concurrently per iteration")
	fs.StringVar(&cfg.provider, "provider", providerHaversine, "Distance provider: haversine or osrm")
	fs.StringVar(&cfg.osrmURL, "osrm-url", distance.DefaultOSRMURL, "OSRM server base URL")
	fs.StringVar(&cfg.dbPath, "db", "", "SQLite file for the distance cache and run history")
	fs.StringVar(&cfg.stopsPath, "stops", "", "JSON file with stops. By default the campus sample is used")
	fs.BoolVar(&cfg.save, "save", false, "Store the run in the database given by -db")
	fs.BoolVar(&cfg.twoOpt, "two-opt", false, "Polish the best route with 2-opt")
	fs.BoolVar(&cfg.normalize, "normalize", false, "Print the distance matrix scaled to [0,1]")
	fs.BoolVar(&cfg.verbose, "v", false, "Log progress every iteration")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.seed = &seed
		}
	})

	switch {
	case cfg.provider != providerHaversine && cfg.provider != providerOSRM:
		return config{}, fmt.Errorf("unknown provider %q (want %s or %s)", cfg.provider, providerHaversine, providerOSRM)
	case cfg.save && cfg.dbPath == "":
		return config{}, errors.New("-save requires -db")
	}

	return cfg, nil
}

// options maps the flags onto colony options.
func (c config) options() aco.Options {
	opts := aco.NewOptions(
		aco.WithAnts(c.ants),
		aco.WithIterations(c.iterations),
		aco.WithAlpha(c.alpha),
		aco.WithBeta(c.beta),
		aco.WithEvaporation(c.evaporation),
		aco.WithQ(c.q),
		aco.WithWorkers(c.workers),
	)
	if c.seed != nil {
		opts.Seed = c.seed
	}
	if c.verbose {
		opts.OnIteration = func(s aco.IterationStats) {
			log.Printf("[ACO] Iteration %d: iteration best=%.4f global best=%.4f", s.Iteration+1, s.IterationBest, s.GlobalBest)
		}
	}

	return opts
}

func loadStops(path string) ([]geo.Stop, error) {
	if path == "" {
		return geo.CampusStops(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stops []geo.Stop
	if err := json.Unmarshal(raw, &stops); err != nil {
		return nil, fmt.Errorf("at %s: %w", path, err)
	}

	return stops, nil
}

func run(ctx context.Context, cfg config, out io.Writer) error {
	stops, err := loadStops(cfg.stopsPath)
	if err != nil {
		return err
	}

	var db *store.Store
	if cfg.dbPath != "" {
		if db, err = store.Open(cfg.dbPath); err != nil {
			return err
		}
		defer db.Close()
	}

	var provider distance.Provider
	switch cfg.provider {
	case providerOSRM:
		var cache distance.Cache
		if db != nil {
			cache = db.DistanceCache()
		}
		provider = distance.NewOSRMProvider(cfg.osrmURL, cache)
	default:
		provider = distance.NewHaversineProvider()
	}

	tbl, err := provider.Table(ctx, stops)
	if err != nil {
		return fmt.Errorf("distance table: %w", err)
	}

	opts := cfg.options()
	log.Printf("[ACO] Starting: stops=%d ants=%d iterations=%d workers=%d", len(stops), opts.Ants, opts.Iterations, opts.Workers)
	res, err := aco.Optimize(tbl.Matrix, opts)
	if err != nil {
		return err
	}
	log.Printf("[ACO] Done: distance=%.4f best_iteration=%d seed=%d", res.Distance, res.BestIteration+1, res.Seed)

	rep := report{
		Labels:    tbl.Labels,
		Matrix:    tbl.Matrix,
		Result:    res,
		Provider:  cfg.provider,
		Normalize: cfg.normalize,
	}
	if cfg.twoOpt {
		route, length, err := aco.TwoOpt(tbl.Matrix, res.Route, 0)
		if err != nil {
			return err
		}
		rep.Polished, rep.PolishedDistance = route, length
	}
	if err := rep.write(out, hostLine()); err != nil {
		return err
	}

	if cfg.save {
		rec, err := db.Runs().Save(ctx, store.NewRunRecord(cfg.provider, tbl.Labels, res, opts))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSaved run %s\n", rec.ID)
	}

	return nil
}
