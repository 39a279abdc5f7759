package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	phaseCheck   = "check"
	phaseDeliver = "deliver"
)

// Metrics is a decorator counting processed transactions and measuring
// their processing time. Transactions are labeled with the message path,
// the processing phase and the ABCI result code.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ tokenswap.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator with all collectors registered
// in given registerer.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokenswap",
			Name:      "transactions_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tokenswap",
			Name:      "transaction_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	reg.MustRegister(m.processed, m.duration)
	return m
}

// Check measures the check call.
func (m Metrics) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe(phaseCheck, tx, start, err)
	return res, err
}

// Deliver measures the deliver call.
func (m Metrics) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe(phaseDeliver, tx, start, err)
	return res, err
}

func (m Metrics) observe(phase string, tx tokenswap.Tx, start time.Time, err error) {
	path := tokenswap.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.processed.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
