package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Recorder collects the outcome and duration of the jobs of one orcaprop run,
// to be written in the node_exporter textfile format.
type Recorder struct {
	reg      *prometheus.Registry
	jobs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{reg: prometheus.NewRegistry()}
	r.jobs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orcaprop",
		Name:      "jobs_total",
		Help:      "Number of jobs processed",
	},
		[]string{"workflow", "status"},
	)
	r.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orcaprop",
		Name:      "job_duration_seconds",
		Help:      "Wall-clock time spent on a job, all its ORCA runs included",
		Buckets:   []float64{60, 600, 3600, 4 * 3600, 24 * 3600},
	},
		[]string{"workflow"},
	)
	r.reg.MustRegister(r.jobs, r.duration)
	return r
}

// Job records one job of the given workflow. A non-nil err counts it as failed.
func (r *Recorder) Job(workflow string, elapsed time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	r.jobs.WithLabelValues(workflow, status).Inc()
	r.duration.WithLabelValues(workflow).Observe(elapsed.Seconds())
}

// WriteFile writes the metrics to name, atomically.
func (r *Recorder) WriteFile(name string) error {
	return prometheus.WriteToTextfile(name, r.reg)
}
