package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PointMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ffpoints", Name: "point_mutations_total", Help: "Point increments by target kind and outcome",
	}, []string{"kind", "outcome"})
	Completions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ffpoints", Name: "completions_total", Help: "Activity completion attempts by outcome",
	}, []string{"outcome"})
	QRScans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ffpoints", Name: "qr_scans_total", Help: "QR scan-to-award attempts by outcome",
	}, []string{"outcome"})
	PointsDrift = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ffpoints", Name: "points_drift_users", Help: "Users whose balance differs from their ledger at the last audit",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ffpoints", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(PointMutations, Completions, QRScans, PointsDrift, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
