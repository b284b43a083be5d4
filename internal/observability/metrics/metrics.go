package metrics

import "github.com/prometheus/client_golang/prometheus"

// LookupMetrics exposes counters/histograms for the webhook and lookup flow.
type LookupMetrics struct {
	updatesTotal   *prometheus.CounterVec
	lookupsTotal   *prometheus.CounterVec
	outboundTotal  *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	m := &LookupMetrics{
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "numberbot",
			Subsystem: "webhook",
			Name:      "updates_total",
			Help:      "Inbound Telegram updates by outcome",
		}, []string{"outcome"}),
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "numberbot",
			Subsystem: "lookup",
			Name:      "results_total",
			Help:      "Number lookups by result",
		}, []string{"result", "line_type"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "numberbot",
			Subsystem: "telegram",
			Name:      "outbound_total",
			Help:      "sendMessage calls by status",
		}, []string{"status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "numberbot",
			Subsystem: "webhook",
			Name:      "latency_seconds",
			Help:      "Latency of webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.updatesTotal, m.lookupsTotal, m.outboundTotal, m.webhookLatency)
	return m
}

func (m *LookupMetrics) ObserveUpdate(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.updatesTotal.WithLabelValues(outcome).Inc()
	m.webhookLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *LookupMetrics) ObserveLookup(result, lineType string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(result, lineType).Inc()
}

func (m *LookupMetrics) ObserveOutbound(status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(status).Inc()
}
