package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/colony/aco"
)

// Params is the serialisable subset of aco.Options.
type Params struct {
	Ants        int     `json:"ants"`
	Iterations  int     `json:"iterations"`
	Alpha       float64 `json:"alpha"`
	Beta        float64 `json:"beta"`
	Evaporation float64 `json:"evaporation"`
	Q           float64 `json:"q"`
	Workers     int     `json:"workers"`
}

// ParamsFrom copies the tunable fields of opts.
func ParamsFrom(opts aco.Options) Params {
	return Params{
		Ants:        opts.Ants,
		Iterations:  opts.Iterations,
		Alpha:       opts.Alpha,
		Beta:        opts.Beta,
		Evaporation: opts.Evaporation,
		Q:           opts.Q,
		Workers:     opts.Workers,
	}
}

// Options rebuilds aco.Options with the given seed, so a stored run can be replayed.
func (p Params) Options(seed int64) aco.Options {
	return aco.NewOptions(
		aco.WithAnts(p.Ants),
		aco.WithIterations(p.Iterations),
		aco.WithAlpha(p.Alpha),
		aco.WithBeta(p.Beta),
		aco.WithEvaporation(p.Evaporation),
		aco.WithQ(p.Q),
		aco.WithWorkers(p.Workers),
		aco.WithSeed(seed),
	)
}

// RunRecord is one persisted colony run.
type RunRecord struct {
	ID            string
	CreatedAt     time.Time
	Provider      string
	Labels        []string
	Route         []int
	Distance      float64
	History       []float64
	BestIteration int
	Seed          int64
	Params        Params
}

// NewRunRecord captures res together with the labels and options that produced it.
func NewRunRecord(provider string, labels []string, res aco.Result, opts aco.Options) RunRecord {
	return RunRecord{
		Provider:      provider,
		Labels:        labels,
		Route:         res.Route,
		Distance:      res.Distance,
		History:       res.History,
		BestIteration: res.BestIteration,
		Seed:          res.Seed,
		Params:        ParamsFrom(opts),
	}
}

// Runs stores finished colony runs.
type Runs struct {
	store *Store
}

// Save inserts rec, assigning an ID and a creation time when absent, and
// returns the stored record.
func (r *Runs) Save(ctx context.Context, rec RunRecord) (RunRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	labels, err := json.Marshal(rec.Labels)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to encode labels: %w", err)
	}
	route, err := json.Marshal(rec.Route)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to encode route: %w", err)
	}
	history, err := json.Marshal(rec.History)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to encode history: %w", err)
	}
	params, err := json.Marshal(rec.Params)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to encode params: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, err = r.store.db.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, provider, labels, route, distance, history, best_iteration, seed, params)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UnixNano(), rec.Provider, string(labels), string(route),
		rec.Distance, string(history), rec.BestIteration, rec.Seed, string(params))
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to insert run: %w", err)
	}

	log.Printf("[STORE] Run saved: id=%s stops=%d distance=%.3f", rec.ID, len(rec.Route), rec.Distance)
	return rec, nil
}

const runColumns = `id, created_at, provider, labels, route, distance, history, best_iteration, seed, params`

// Get returns the run with the given id, or ErrNotFound.
func (r *Runs) Get(ctx context.Context, id string) (RunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row := r.store.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to get run: %w", err)
	}

	return rec, nil
}

// List returns up to limit runs, newest first. limit ≤ 0 returns all runs.
func (r *Runs) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s rowScanner) (RunRecord, error) {
	var (
		rec                                RunRecord
		created                            int64
		labels, route, history, paramsJSON string
	)
	if err := s.Scan(&rec.ID, &created, &rec.Provider, &labels, &route,
		&rec.Distance, &history, &rec.BestIteration, &rec.Seed, &paramsJSON); err != nil {
		return RunRecord{}, err
	}
	rec.CreatedAt = time.Unix(0, created).UTC()

	if err := json.Unmarshal([]byte(labels), &rec.Labels); err != nil {
		return RunRecord{}, fmt.Errorf("decode labels: %w", err)
	}
	if err := json.Unmarshal([]byte(route), &rec.Route); err != nil {
		return RunRecord{}, fmt.Errorf("decode route: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &rec.History); err != nil {
		return RunRecord{}, fmt.Errorf("decode history: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
		return RunRecord{}, fmt.Errorf("decode params: %w", err)
	}

	return rec, nil
}
