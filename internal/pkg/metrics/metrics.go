// Package metrics 감시 주기와 알림 전송 결과를 Prometheus 지표로 기록합니다.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tgtg_watcher"

// 감시 주기의 처리 결과
const (
	OutcomeSuccess = "success"
	OutcomeSkipped = "skipped" // 활성화된 채널이 없어 조회를 생략함
	OutcomeFailed  = "failed"
)

// Recorder 애플리케이션 지표 수집기입니다. 인스턴스마다 독립된 Registry를 가집니다.
type Recorder struct {
	registry *prometheus.Registry

	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	listings      prometheus.Gauge
	changes       *prometheus.CounterVec
	sends         *prometheus.CounterVec
}

// New 지표를 등록한 Recorder를 생성합니다.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "watch",
				Name:      "cycles_total",
				Help:      "Total number of polling cycles by outcome.",
			},
			[]string{"outcome"},
		),
		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "watch",
				Name:      "cycle_duration_seconds",
				Help:      "Duration of polling cycles including the fetch.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),
		listings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "watch",
				Name:      "listings",
				Help:      "Number of listings in the last fetched snapshot.",
			},
		),
		changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "watch",
				Name:      "changes_total",
				Help:      "Total number of visible changes by category.",
			},
			[]string{"category"},
		),
		sends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notification",
				Name:      "sends_total",
				Help:      "Total number of channel sends by channel and result.",
			},
			[]string{"channel", "result"},
		),
	}

	r.registry.MustRegister(
		r.cycles,
		r.cycleDuration,
		r.listings,
		r.changes,
		r.sends,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return r
}

// Handler 등록된 지표를 노출하는 HTTP 핸들러를 반환합니다.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordCycle 감시 주기 하나의 결과를 기록합니다.
func (r *Recorder) RecordCycle(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.cycles.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSkipped {
		r.cycleDuration.Observe(duration.Seconds())
	}
}

// SetListings 마지막 조회 결과의 상품 수를 기록합니다.
func (r *Recorder) SetListings(n int) {
	if r == nil {
		return
	}
	r.listings.Set(float64(n))
}

// RecordChange 알림 대상이 된 변경 한 건을 기록합니다.
func (r *Recorder) RecordChange(category string) {
	if r == nil {
		return
	}
	r.changes.WithLabelValues(category).Inc()
}

// RecordSend 채널 전송 결과를 기록합니다.
func (r *Recorder) RecordSend(channel string, err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.sends.WithLabelValues(channel, result).Inc()
}
