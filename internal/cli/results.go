package cli

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/rmera/orcaprop/internal/metrics"
	"github.com/rmera/orcaprop/solv"
)

// ResultsOptions control the optional outputs of the workflows.
type ResultsOptions struct {
	XLSX        string
	MetricsFile string
	KeepOutputs bool
}

func (o *ResultsOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.XLSX, "xlsx", o.XLSX, "Also write a summary of the results to this spreadsheet")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write job counts and durations to this file, in the Prometheus textfile format")
	fs.BoolVar(&o.KeepOutputs, "keep-outputs", o.KeepOutputs, "Keep the ORCA outputs of each job in <job>.outputs.zst")
}

// jobOutcome is the part of a workflow result that the metrics need.
type jobOutcome struct {
	elapsed time.Duration
	err     error
}

// finish writes the spreadsheet and the metrics file, if they were requested.
func (o *ResultsOptions) finish(workflow string, t solv.Table, jobs []jobOutcome) error {
	if err := o.writeXLSX(t); err != nil {
		return err
	}
	if o.MetricsFile == "" {
		return nil
	}
	rec := metrics.NewRecorder()
	for _, j := range jobs {
		rec.Job(workflow, j.elapsed, j.err)
	}
	return errors.Wrap(rec.WriteFile(o.MetricsFile), "writing metrics")
}

func (o *ResultsOptions) writeXLSX(t solv.Table) error {
	if o.XLSX == "" {
		return nil
	}
	f, err := os.Create(o.XLSX)
	if err != nil {
		return errors.Wrap(err, "creating spreadsheet")
	}
	if err := solv.WriteXLSX(f, t); err != nil {
		f.Close()
		return errors.Wrap(err, "writing spreadsheet")
	}
	return errors.Wrap(f.Close(), "writing spreadsheet")
}
