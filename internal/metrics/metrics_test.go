package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(Te *testing.T) {
	r := NewRecorder()
	r.Job("cosmors", 90*time.Second, nil)
	r.Job("cosmors", 30*time.Second, errors.New("no convergence"))
	r.Job("cosmors", 10*time.Second, nil)
	r.Job("logp", time.Hour, nil)
	assert.Equal(Te, 2.0, testutil.ToFloat64(r.jobs.WithLabelValues("cosmors", StatusOK)))
	assert.Equal(Te, 1.0, testutil.ToFloat64(r.jobs.WithLabelValues("cosmors", StatusFailed)))
	assert.Equal(Te, 1.0, testutil.ToFloat64(r.jobs.WithLabelValues("logp", StatusOK)))

	name := filepath.Join(Te.TempDir(), "orcaprop.prom")
	require.NoError(Te, r.WriteFile(name))
	data, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Contains(Te, string(data), `orcaprop_jobs_total{status="failed",workflow="cosmors"} 1`)
	assert.Contains(Te, string(data), `orcaprop_job_duration_seconds_count{workflow="cosmors"} 3`)
}
