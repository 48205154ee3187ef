package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/colony/aco"
	"github.com/katalvlaran/colony/distance"
	"github.com/katalvlaran/colony/matrix"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// report is everything printed after a run.
type report struct {
	Labels    []string
	Matrix    *matrix.Dense
	Result    aco.Result
	Provider  string
	Normalize bool

	// Polished is the 2-opt route, nil when 2-opt was not requested.
	Polished         []int
	PolishedDistance float64
}

// hostLine describes the machine the run executed on.
func hostLine() string {
	platform, model, memory := "unknown", "unknown", "unknown"
	if h, err := host.Info(); err == nil {
		platform = fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 {
		model = c[0].ModelName
	}
	if v, err := mem.VirtualMemory(); err == nil {
		memory = fmt.Sprintf("%d GB", v.Total/1024/1024/1024)
	}

	return fmt.Sprintf("Host: %s | CPU: %s | RAM: %s", strings.TrimSpace(platform), model, memory)
}

func (r report) write(w io.Writer, host string) error {
	fmt.Fprintln(w, host)
	fmt.Fprintf(w, "Provider: %s | Stops: %d | Seed: %d\n\n", r.Provider, len(r.Labels), r.Result.Seed)

	fmt.Fprintln(w, "Best route:")
	if err := r.writeRoute(w, r.Result.Route); err != nil {
		return err
	}
	r.writeSummary(w)

	if r.Polished != nil {
		fmt.Fprintf(w, "\n2-opt route (%.4f km, %.2f%% shorter):\n", r.PolishedDistance, percentDrop(r.Result.Distance, r.PolishedDistance))
		if err := r.writeRoute(w, r.Polished); err != nil {
			return err
		}
	}

	if err := r.writeStats(w); err != nil {
		return err
	}

	m := r.Matrix
	title := "Distance matrix (km):"
	if r.Normalize {
		norm, err := matrix.NormalizeByMax(m)
		if err != nil {
			return err
		}
		m, title = norm, "Distance matrix (scaled by max):"
	}
	fmt.Fprintln(w, "\n"+title)

	return writeMatrix(w, m)
}

// writeRoute prints the closed tour leg by leg, ending with the return to
// the first stop.
func (r report) writeRoute(w io.Writer, route []int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tStop\tLeg km\tTotal km\tNearest stop")

	var total float64
	for k := 0; k <= len(route); k++ {
		cur := route[k%len(route)]
		var leg float64
		if k > 0 {
			d, err := r.Matrix.At(route[k-1], cur)
			if err != nil {
				return err
			}
			leg = d
		}
		total += leg

		nearest := "-"
		if nb, err := matrix.NearestNeighbors(r.Matrix, cur, 1); err == nil && len(nb) == 1 && nb[0].Distance < distance.UnreachableKm {
			nearest = r.Labels[nb[0].Index]
		}

		idx := fmt.Sprintf("%d", k+1)
		if k == len(route) {
			idx = "↩"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", idx, r.Labels[cur], formatKm(leg), formatKm(total), nearest)
	}

	return tw.Flush()
}

func (r report) writeSummary(w io.Writer) {
	h := r.Result.History
	fmt.Fprintf(w, "\nTotal distance:      %.4f km\n", r.Result.Distance)
	fmt.Fprintf(w, "Found in iteration:  %d of %d\n", r.Result.BestIteration+1, len(h))
	fmt.Fprintf(w, "Mean of history:     %.4f km\n", mean(h))
	if len(h) > 0 {
		fmt.Fprintf(w, "Improvement:         %.2f%%\n", percentDrop(h[0], h[len(h)-1]))
	}
}

func (r report) writeStats(w io.Writer) error {
	st, err := matrix.DistanceStats(r.Matrix)
	if err != nil {
		return err
	}
	unreachable := 0
	for i := 0; i < r.Matrix.Rows(); i++ {
		for j := 0; j < r.Matrix.Cols(); j++ {
			if v, _ := r.Matrix.At(i, j); v >= distance.UnreachableKm {
				unreachable++
			}
		}
	}

	fmt.Fprintf(w, "\nMatrix: min=%.4f max=%.4f mean=%.4f median=%.4f std=%.4f pairs=%d unreachable=%d\n",
		st.Min, st.Max, st.Mean, st.Median, st.Std, st.Count, unreachable)

	return nil
}

// writeMatrix prints m with unreachable cells shown as "-".
func writeMatrix(w io.Writer, m matrix.Matrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	n := m.Cols()
	fmt.Fprint(tw, "\t")
	for j := 0; j < n; j++ {
		fmt.Fprintf(tw, "%d\t", j+1)
	}
	fmt.Fprintln(tw)

	for i := 0; i < m.Rows(); i++ {
		fmt.Fprintf(tw, "%d\t", i+1)
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t", formatKm(v))
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func formatKm(v float64) string {
	if v >= distance.UnreachableKm {
		return "-"
	}

	return fmt.Sprintf("%.3f", v)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}

	return s / float64(len(xs))
}

// percentDrop is (from-to)/from·100, or 0 when from is 0.
func percentDrop(from, to float64) float64 {
	if from == 0 {
		return 0
	}

	return (from - to) / from * 100
}
