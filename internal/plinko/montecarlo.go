package plinko

import (
	"math"
	"sort"

	"github.com/xtding233/plinko-backend/internal/board"
)

// Stats summarizes the multipliers observed over many drops.
type Stats struct {
	Trials   int     `json:"trials"`
	Mean     float64 `json:"mean"` // empirical return to player per unit staked
	Var      float64 `json:"var"`
	StdDev   float64 `json:"std_dev"`
	P50      float64 `json:"p50"`
	P90      float64 `json:"p90"`
	P99      float64 `json:"p99"`
	HitRate  float64 `json:"hit_rate"` // share of drops paying at least the stake
	SlotHits []int   `json:"slot_hits"`
}

// calcStats computes mean/variance/percentiles for multiplier samples.
func calcStats(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	hits := 0
	for _, v := range xs {
		sum += v
		if v >= 1 {
			hits++
		}
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	// percentiles
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Trials:  n,
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		HitRate: float64(hits) / float64(n),
	}
}

// RunMonteCarlo drops trials balls on cfg and summarizes the multipliers.
// Pass a seeded source for reproducible runs.
func RunMonteCarlo(cfg board.Config, trials int, src BitSource) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	if trials <= 0 {
		return Stats{}, nil
	}
	if src == nil {
		src = DefaultSource()
	}

	samples := make([]float64, trials)
	slots := make([]int, cfg.Columns)
	for i := 0; i < trials; i++ {
		col := board.StartColumn
		for r := 0; r < cfg.Rows; r++ {
			col = step(col, src)
		}
		slots[col]++
		samples[i] = cfg.Multiplier(col)
	}

	st := calcStats(samples)
	st.SlotHits = slots
	return st, nil
}
