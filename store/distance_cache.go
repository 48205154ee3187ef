package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/katalvlaran/colony/distance"
)

// DistanceCache stores directed pair distances keyed by rounded coordinates.
type DistanceCache struct {
	store *Store
}

var _ distance.Cache = (*DistanceCache)(nil)

// GetBatch returns the cached subset of keys.
func (r *DistanceCache) GetBatch(ctx context.Context, keys []distance.PairKey) (map[distance.PairKey]float64, error) {
	result := make(map[distance.PairKey]float64)
	if len(keys) == 0 {
		return result, nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stmt, err := r.store.db.PrepareContext(ctx, `SELECT distance_km FROM distance_cache
	          WHERE origin_lat = ? AND origin_lng = ? AND dest_lat = ? AND dest_lng = ?`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare batch query: %w", err)
	}
	defer stmt.Close()

	for _, k := range keys {
		k = rounded(k)
		var km float64
		err := stmt.QueryRowContext(ctx, k.OriginLat, k.OriginLng, k.DestLat, k.DestLng).Scan(&km)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query batch entry: %w", err)
		}
		result[k] = km
	}

	return result, nil
}

// SetBatch upserts entries in a single transaction.
func (r *DistanceCache) SetBatch(ctx context.Context, entries []distance.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO distance_cache
	          (origin_lat, origin_lng, dest_lat, dest_lng, distance_km)
	          VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		k := rounded(e.Key)
		if _, err := stmt.ExecContext(ctx, k.OriginLat, k.OriginLng, k.DestLat, k.DestLng, e.Km); err != nil {
			return fmt.Errorf("failed to insert batch entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of cached pairs.
func (r *DistanceCache) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM distance_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count distance cache: %w", err)
	}

	return n, nil
}

// Clear removes every cached pair.
func (r *DistanceCache) Clear(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM distance_cache"); err != nil {
		return fmt.Errorf("failed to clear distance cache: %w", err)
	}

	return nil
}

// rounded normalises a key that was not built with distance.NewPairKey.
func rounded(k distance.PairKey) distance.PairKey {
	return distance.PairKey{
		OriginLat: distance.RoundCoordinate(k.OriginLat),
		OriginLng: distance.RoundCoordinate(k.OriginLng),
		DestLat:   distance.RoundCoordinate(k.DestLat),
		DestLng:   distance.RoundCoordinate(k.DestLng),
	}
}
