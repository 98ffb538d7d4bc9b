// Package metrics collects and exposes Prometheus metrics for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface the HTTP layer records against.
type Recorder interface {
	RecordSignIn(success bool)
	RecordSessionCheck(live bool)
	RecordRecordFetch(kind string)
	RecordDocumentUpload()
}

// Collector implements Recorder on top of Prometheus counters.
type Collector struct {
	signInSuccess prometheus.Counter
	signInFail    prometheus.Counter
	sessionCheck  *prometheus.CounterVec
	recordFetch   *prometheus.CounterVec
	docUploads    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signInSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aure_signin_success_total",
			Help: "Total successful sign-ins.",
		}),
		signInFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aure_signin_fail_total",
			Help: "Total failed sign-ins.",
		}),
		sessionCheck: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aure_session_check_total",
			Help: "Session checks by result.",
		}, []string{"result"}),
		recordFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aure_record_fetch_total",
			Help: "Record list fetches by kind.",
		}, []string{"kind"}),
		docUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aure_document_upload_total",
			Help: "Total tax-document upload requests.",
		}),
	}

	reg.MustRegister(
		c.signInSuccess,
		c.signInFail,
		c.sessionCheck,
		c.recordFetch,
		c.docUploads,
	)

	return c
}

func (c *Collector) RecordSignIn(success bool) {
	if success {
		c.signInSuccess.Inc()
		return
	}
	c.signInFail.Inc()
}

func (c *Collector) RecordSessionCheck(live bool) {
	result := "live"
	if !live {
		result = "revoked"
	}
	c.sessionCheck.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRecordFetch(kind string) {
	c.recordFetch.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordDocumentUpload() {
	c.docUploads.Inc()
}

// Handler returns the HTTP handler serving the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
