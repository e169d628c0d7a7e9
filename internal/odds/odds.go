package odds

import (
	"github.com/xtding233/plinko-backend/internal/board"
)

// Report is the exact payout profile of one tier.
type Report struct {
	Tier      string    `json:"tier"`
	Rows      int       `json:"rows"`
	Slots     []float64 `json:"slots"`      // P(landing in column c)
	RTP       float64   `json:"rtp"`        // expected multiplier
	HouseEdge float64   `json:"house_edge"` // 1 - RTP
	Variance  float64   `json:"variance"`   // of the multiplier
	HitRate   float64   `json:"hit_rate"`   // P(multiplier >= 1)
}

// Distribution returns the exact probability of each final column.
// DP over rows: a free peg splits the mass evenly, a wall sends all of it inward.
func Distribution(cfg board.Config) []float64 {
	cols := cfg.Columns
	if cols < 2 {
		cols = board.ColumnCount
	}
	dp := make([]float64, cols) // mass per column after the current row
	nxt := make([]float64, cols)
	dp[board.StartColumn] = 1

	for r := 0; r < cfg.Rows; r++ {
		for c := range nxt {
			nxt[c] = 0
		}
		for c, p := range dp {
			if p == 0 {
				continue
			}
			switch c {
			case 0:
				nxt[1] += p
			case cols - 1:
				nxt[cols-2] += p
			default:
				nxt[c-1] += p / 2
				nxt[c+1] += p / 2
			}
		}
		dp, nxt = nxt, dp
	}
	return dp
}

// Analyze computes the expected return of cfg. The multiplier table is
// treated as opaque configuration; nothing here enforces a house edge.
func Analyze(cfg board.Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	slots := Distribution(cfg)

	var rtp, hit float64
	for c, p := range slots {
		m := cfg.Multiplier(c)
		rtp += p * m
		if m >= 1 {
			hit += p
		}
	}
	var variance float64
	for c, p := range slots {
		d := cfg.Multiplier(c) - rtp
		variance += p * d * d
	}

	return Report{
		Tier:      cfg.Tier,
		Rows:      cfg.Rows,
		Slots:     slots,
		RTP:       rtp,
		HouseEdge: 1 - rtp,
		Variance:  variance,
		HitRate:   hit,
	}, nil
}
