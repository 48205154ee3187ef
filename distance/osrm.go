package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/colony/geo"
	"github.com/katalvlaran/colony/matrix"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultOSRMURL is the public OSRM demo server.
	DefaultOSRMURL = "https://router.project-osrm.org"

	// DefaultBatchSize is the coordinate limit of the public OSRM server.
	DefaultBatchSize = 80

	defaultTimeout    = 30 * time.Second
	defaultBatchPause = 100 * time.Millisecond
)

// FetchError is returned when an OSRM request cannot produce a table.
type FetchError struct {
	Status int    // HTTP status, 0 when no response was received
	Reason string // human-readable cause
	Err    error  // underlying transport or decode error, if any
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("distance: osrm fetch failed: HTTP %d: %s", e.Status, e.Reason)
	}

	return fmt.Sprintf("distance: osrm fetch failed: %s", e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// OSRMOption customises the OSRM provider.
type OSRMOption func(*osrmProvider)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) OSRMOption {
	return func(p *osrmProvider) { p.httpClient = c }
}

// WithBatchSize bounds the number of coordinates sent in one request.
// Values below 2 are ignored.
func WithBatchSize(n int) OSRMOption {
	return func(p *osrmProvider) {
		if n >= 2 {
			p.batchSize = n
		}
	}
}

// WithBatchPause sets the delay between consecutive batch requests.
func WithBatchPause(d time.Duration) OSRMOption {
	return func(p *osrmProvider) { p.pause = d }
}

type osrmProvider struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	batchSize  int
	pause      time.Duration
	group      singleflight.Group
}

type osrmTableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
}

// NewOSRMProvider returns a Provider backed by the OSRM table service at
// baseURL. cache may be nil.
func NewOSRMProvider(baseURL string, cache Cache, opts ...OSRMOption) Provider {
	if baseURL == "" {
		baseURL = DefaultOSRMURL
	}
	p := &osrmProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      cache,
		batchSize:  DefaultBatchSize,
		pause:      defaultBatchPause,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Table resolves stops into road kilometres. Identical concurrent requests
// share one fetch; every caller receives its own copy of the matrix.
func (p *osrmProvider) Table(ctx context.Context, stops []geo.Stop) (Table, error) {
	labels, err := geo.Labels(stops)
	if err != nil {
		return Table{}, err
	}

	v, err, shared := p.group.Do(flightKey(stops), func() (interface{}, error) {
		return p.resolve(ctx, stops)
	})
	if err != nil {
		return Table{}, err
	}
	if shared {
		log.Printf("[OSRM] Shared in-flight table: points=%d", len(stops))
	}

	m, err := matrix.NewDenseFromRows(v.([][]float64))
	if err != nil {
		return Table{}, err
	}

	return Table{Labels: labels, Matrix: m}, nil
}

func flightKey(stops []geo.Stop) string {
	var b strings.Builder
	for i, s := range stops {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%.5f,%.5f", RoundCoordinate(s.Lng), RoundCoordinate(s.Lat))
	}

	return b.String()
}

// resolve builds the directed km table (cache first, then OSRM) and returns
// its symmetric, zero-diagonal form.
func (p *osrmProvider) resolve(ctx context.Context, stops []geo.Stop) ([][]float64, error) {
	n := len(stops)
	km := make([][]float64, n)
	for i := range km {
		km[i] = make([]float64, n)
	}

	missing, err := p.fillFromCache(ctx, stops, km)
	if err != nil {
		return nil, err
	}

	if missing == 0 {
		log.Printf("[OSRM] Distance matrix all cached: points=%d", n)
	} else {
		log.Printf("[OSRM] Distance matrix request: points=%d cached=%d missing=%d", n, n*(n-1)-missing, missing)
		entries, err := p.fetchAll(ctx, stops, km)
		if err != nil {
			return nil, err
		}
		if p.cache != nil && len(entries) > 0 {
			if err := p.cache.SetBatch(ctx, entries); err != nil {
				return nil, fmt.Errorf("distance: store cache: %w", err)
			}
		}
	}

	symmetrize(km)

	return km, nil
}

// fillFromCache copies cached pairs into km and returns how many directed
// off-diagonal pairs are still unknown.
func (p *osrmProvider) fillFromCache(ctx context.Context, stops []geo.Stop, km [][]float64) (int, error) {
	n := len(stops)
	if p.cache == nil {
		return n * (n - 1), nil
	}

	keys := make([]PairKey, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if k := NewPairKey(stops[i].Coordinates, stops[j].Coordinates); i != j && !k.self() {
				keys = append(keys, k)
			}
		}
	}
	hits, err := p.cache.GetBatch(ctx, keys)
	if err != nil {
		return 0, fmt.Errorf("distance: read cache: %w", err)
	}

	missing := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			k := NewPairKey(stops[i].Coordinates, stops[j].Coordinates)
			if k.self() {
				// Same point after rounding: never cached, always 0.
				km[i][j] = 0
				continue
			}
			if v, ok := hits[k]; ok {
				km[i][j] = v
			} else {
				missing++
			}
		}
	}

	return missing, nil
}

// fetchAll fills every off-diagonal cell of km from OSRM, one request per
// pair of index chunks, and returns the reachable pairs for the cache.
func (p *osrmProvider) fetchAll(ctx context.Context, stops []geo.Stop, km [][]float64) ([]Entry, error) {
	n := len(stops)
	chunk := n
	if n > p.batchSize {
		// A request carries the union of a source and a destination chunk.
		chunk = p.batchSize / 2
	}

	var chunks [][]int
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		idx := make([]int, hi-lo)
		for k := range idx {
			idx[k] = lo + k
		}
		chunks = append(chunks, idx)
	}
	if len(chunks) > 1 {
		log.Printf("[OSRM] Using batched requests: points=%d batches=%d", n, len(chunks)*len(chunks))
	}

	var (
		entries  []Entry
		requests int
	)
	for ci, src := range chunks {
		for cj, dst := range chunks {
			if requests > 0 && p.pause > 0 {
				select {
				case <-ctx.Done():
					return nil, &FetchError{Reason: ctx.Err().Error(), Err: ctx.Err()}
				case <-time.After(p.pause):
				}
			}

			rows, err := p.fetchBatch(ctx, stops, src, dst, ci == cj)
			if err != nil {
				return nil, err
			}
			requests++

			for si, i := range src {
				for di, j := range dst {
					if i == j {
						continue
					}
					v := rows[si][di]
					if v == nil || *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
						km[i][j] = UnreachableKm
						continue
					}
					km[i][j] = *v / 1000
					if k := NewPairKey(stops[i].Coordinates, stops[j].Coordinates); !k.self() {
						entries = append(entries, Entry{Key: k, Km: km[i][j]})
					}
				}
			}
		}
	}
	log.Printf("[OSRM] Requests complete: requests=%d entries=%d", requests, len(entries))

	return entries, nil
}

// fetchBatch performs one /table request for sources src and destinations dst
// and returns the |src|×|dst| distances in metres (nil = unreachable).
func (p *osrmProvider) fetchBatch(ctx context.Context, stops []geo.Stop, src, dst []int, same bool) ([][]*float64, error) {
	// Local coordinate list: src first, then dst entries not already present.
	local := make(map[int]int, len(src)+len(dst))
	order := make([]int, 0, len(src)+len(dst))
	for _, idx := range src {
		local[idx] = len(order)
		order = append(order, idx)
	}
	for _, idx := range dst {
		if _, ok := local[idx]; !ok {
			local[idx] = len(order)
			order = append(order, idx)
		}
	}

	coords := make([]string, len(order))
	for k, idx := range order {
		coords[k] = fmt.Sprintf("%.6f,%.6f", stops[idx].Lng, stops[idx].Lat)
	}
	queryURL := fmt.Sprintf("%s/table/v1/driving/%s?annotations=distance", p.baseURL, strings.Join(coords, ";"))
	if !same {
		queryURL += "&sources=" + joinLocal(src, local) + "&destinations=" + joinLocal(dst, local)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		log.Printf("[ERROR] Failed to create OSRM request: points=%d err=%v", len(order), err)
		return nil, &FetchError{Reason: err.Error(), Err: err}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] OSRM API request failed: points=%d err=%v", len(order), err)
		return nil, &FetchError{Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[ERROR] OSRM API error: points=%d status=%d body=%s", len(order), resp.StatusCode, string(body))
		return nil, &FetchError{Status: resp.StatusCode, Reason: strings.TrimSpace(string(body))}
	}

	var osrmResp osrmTableResponse
	if err := json.NewDecoder(resp.Body).Decode(&osrmResp); err != nil {
		log.Printf("[ERROR] Failed to decode OSRM response: points=%d err=%v", len(order), err)
		return nil, &FetchError{Reason: err.Error(), Err: err}
	}
	if osrmResp.Code != "Ok" {
		log.Printf("[ERROR] OSRM returned error code: points=%d code=%s", len(order), osrmResp.Code)
		return nil, &FetchError{Reason: fmt.Sprintf("OSRM error: %s %s", osrmResp.Code, osrmResp.Message)}
	}
	if len(osrmResp.Distances) != len(src) {
		return nil, &FetchError{Reason: fmt.Sprintf("got %d distance rows, want %d", len(osrmResp.Distances), len(src))}
	}
	for r, row := range osrmResp.Distances {
		if len(row) != len(dst) {
			return nil, &FetchError{Reason: fmt.Sprintf("row %d has %d cells, want %d", r, len(row), len(dst))}
		}
	}

	return osrmResp.Distances, nil
}

func joinLocal(idx []int, local map[int]int) string {
	parts := make([]string, len(idx))
	for k, i := range idx {
		parts[k] = strconv.Itoa(local[i])
	}

	return strings.Join(parts, ";")
}

// symmetrize zeroes the diagonal and keeps the shorter direction of each pair.
func symmetrize(km [][]float64) {
	n := len(km)
	for i := 0; i < n; i++ {
		km[i][i] = 0
		for j := i + 1; j < n; j++ {
			d := math.Min(km[i][j], km[j][i])
			km[i][j], km[j][i] = d, d
		}
	}
}
