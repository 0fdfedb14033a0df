package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "hrbaforms"
)

var (
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "render", "duration_seconds"),
		Help:    "Duration of rendering a submission to PDF in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"strategy", "kind"})
	RenderedPages = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "render", "pages"),
		Help:    "Page count of rendered submissions",
		Buckets: []float64{1, 2, 3, 5, 8},
	}, []string{"kind"})
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "intake", "submissions_total"),
		Help: "Submissions received by the intake endpoints, by form kind and outcome",
	}, []string{"kind", "outcome"})
	MailDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "mail", "dispatch_total"),
		Help: "Emails handed to the SMTP relay, by outcome",
	}, []string{"outcome"})
	MailDispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "mail", "dispatch_duration_seconds"),
		Help:    "Duration of a single SMTP dispatch in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
