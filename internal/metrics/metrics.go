package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xtding233/plinko-backend/internal/board"
	"github.com/xtding233/plinko-backend/internal/plinko"
	"github.com/xtding233/plinko-backend/internal/session"
)

// Collectors holds the game and HTTP metrics. Use New with a dedicated
// registry in tests and prometheus.DefaultRegisterer in the server.
type Collectors struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DropsTotal      *prometheus.CounterVec
	StakeTotal      *prometheus.CounterVec
	PayoutTotal     *prometheus.CounterVec
	LandingsTotal   *prometheus.CounterVec
	DropErrorsTotal *prometheus.CounterVec
	TierSelections  *prometheus.CounterVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameHTTPRequestsTotal, Help: HelpTextHTTPRequestsTotal},
			[]string{LabelMethod, LabelPath, LabelStatus},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{Name: MetricNameHTTPRequestDuration, Help: HelpTextHTTPRequestDuration, Buckets: HTTPLatencyBuckets},
			[]string{LabelMethod, LabelPath},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{Name: MetricNameHTTPRequestsInFlight, Help: HelpTextHTTPRequestsInFlight},
		),
		DropsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameDropsTotal, Help: HelpTextDropsTotal},
			[]string{LabelTier},
		),
		StakeTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameStakeTotal, Help: HelpTextStakeTotal},
			[]string{LabelTier},
		),
		PayoutTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNamePayoutTotal, Help: HelpTextPayoutTotal},
			[]string{LabelTier},
		),
		LandingsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameLandingsTotal, Help: HelpTextLandingsTotal},
			[]string{LabelTier, LabelSlot},
		),
		DropErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameDropErrorsTotal, Help: HelpTextDropErrorsTotal},
			[]string{LabelReason},
		),
		TierSelections: f.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameTierSelections, Help: HelpTextTierSelections},
			[]string{LabelTier},
		),
	}
}

var _ session.Recorder = (*Collectors)(nil)

// RecordDrop implements session.Recorder.
func (c *Collectors) RecordDrop(res *plinko.BetResult) {
	c.DropsTotal.WithLabelValues(res.Tier).Inc()
	c.StakeTotal.WithLabelValues(res.Tier).Add(res.Bet.InexactFloat64())
	c.PayoutTotal.WithLabelValues(res.Tier).Add(res.Payout.InexactFloat64())
	c.LandingsTotal.WithLabelValues(res.Tier, strconv.Itoa(res.FinalColumn)).Inc()
}

// RecordRejected implements session.Recorder.
func (c *Collectors) RecordRejected(err error) {
	c.DropErrorsTotal.WithLabelValues(Reason(err)).Inc()
}

// ObserveTier counts an active tier change; pass it to board.OnChange.
func (c *Collectors) ObserveTier(cfg board.Config) {
	c.TierSelections.WithLabelValues(cfg.Tier).Inc()
}

// Reason maps a drop error onto a low-cardinality label.
func Reason(err error) string {
	switch {
	case errors.Is(err, plinko.ErrInvalidBet):
		return "invalid_bet"
	case errors.Is(err, plinko.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, session.ErrDropInProgress):
		return "in_progress"
	default:
		return "other"
	}
}
