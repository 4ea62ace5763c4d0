package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"yutnori/internal/domain/game"
	"yutnori/internal/engine"
)

// Recorder exports table activity as prometheus metrics.
type Recorder struct {
	gamesCreated  *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	throws        *prometheus.CounterVec
	moves         *prometheus.CounterVec
	captured      prometheus.Counter
	finished      prometheus.Counter
	pathLength    prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		gamesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yut_games_created_total",
				Help: "Total number of games created",
			},
			[]string{"board"},
		),
		gamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yut_games_finished_total",
				Help: "Total number of games won",
			},
			[]string{"board"},
		),
		throws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yut_throws_total",
				Help: "Total number of throws by result",
			},
			[]string{"result"},
		),
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yut_moves_total",
				Help: "Total number of moves by throw and outcome",
			},
			[]string{"result", "outcome"},
		),
		captured: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yut_pieces_captured_total",
			Help: "Total number of pieces sent home by captures",
		}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yut_pieces_finished_total",
			Help: "Total number of pieces that completed the course",
		}),
		pathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "yut_move_path_nodes",
			Help:    "Nodes visited per applied move",
			Buckets: prometheus.LinearBuckets(1, 1, 5),
		}),
	}
	reg.MustRegister(r.gamesCreated, r.gamesFinished, r.throws, r.moves, r.captured, r.finished, r.pathLength)
	return r
}

// RegisterSessions exports the number of stored sessions as reported by count.
func RegisterSessions(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "yut_sessions",
			Help: "Number of sessions held by the table",
		},
		func() float64 { return float64(count()) },
	))
}

func (r *Recorder) GameCreated(kind engine.Kind) {
	r.gamesCreated.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) GameFinished(kind engine.Kind) {
	r.gamesFinished.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) ThrowMade(t game.Throw) {
	r.throws.WithLabelValues(t.String()).Inc()
}

func (r *Recorder) MoveApplied(t game.Throw, out engine.Outcome) {
	r.moves.WithLabelValues(t.String(), outcomeLabel(out)).Inc()
	if !out.Applied {
		return
	}
	r.captured.Add(float64(len(out.Victims)))
	if out.Finished {
		r.finished.Add(float64(len(out.Moved)))
	}
	if len(out.Path) > 0 {
		r.pathLength.Observe(float64(len(out.Path)))
	}
}

func outcomeLabel(out engine.Outcome) string {
	switch {
	case !out.Applied:
		return "noop"
	case out.Finished:
		return "finish"
	case out.Captured:
		return "capture"
	default:
		return "move"
	}
}
