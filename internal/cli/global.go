package cli

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rmera/orcaprop/internal/config"
	"github.com/rmera/orcaprop/internal/log"
	"github.com/rmera/orcaprop/qm"
)

var validate = validator.New()

// GlobalOptions are the settings shared by every command that runs ORCA.
// Values not given as flags are taken from the environment.
type GlobalOptions struct {
	Orca     string
	Scratch  string
	Nice     int `validate:"gte=-20,lte=19"`
	NProcs   int `validate:"gte=1"`
	LogLevel string

	logger *zap.Logger
	out    io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	def := qm.DefaultRunConfig()
	return GlobalOptions{
		Nice:     def.Nice,
		NProcs:   def.NProcs,
		LogLevel: "info",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Orca, "orca", o.Orca, "ORCA executable (default ${ORCA_PATH}/orca)")
	fs.StringVar(&o.Scratch, "scratch", o.Scratch, "Directory for the temporary job directories (default $ORCAPROP_SCRATCH or the system temporary directory)")
	fs.IntVar(&o.Nice, "nice", o.Nice, "Scheduling priority increment for ORCA, 0 to run it without nice")
	fs.IntVarP(&o.NProcs, "nthreads", "n", o.NProcs, "Number of processes for ORCA")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
}

// Complete fills the options not given as flags from the environment and builds the logger.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "reading configuration")
	}
	fs := cmd.Flags()
	if !fs.Changed("orca") {
		o.Orca = cfg.OrcaCommand()
	}
	if !fs.Changed("scratch") {
		o.Scratch = cfg.Scratch
	}
	if !fs.Changed("nice") {
		o.Nice = cfg.Nice
	}
	if !fs.Changed("nthreads") {
		o.NProcs = cfg.NProcs
	}
	if !fs.Changed("log-level") {
		o.LogLevel = cfg.LogLevel
	}
	o.logger = log.InitLog(log.ParseLevel(o.LogLevel))
	o.out = cmd.OutOrStdout()
	if n, err := cpu.Counts(true); err == nil && o.NProcs > n {
		o.logger.Warn("more processes requested than logical CPUs available", zap.Int("nthreads", o.NProcs), zap.Int("cpus", n))
	}
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(err, "invalid global options")
	}
	return nil
}

// Handle returns an ORCA handle configured with o.
func (o *GlobalOptions) Handle() *qm.OrcaHandle {
	return qm.NewOrcaHandle(qm.RunConfig{
		Command:    o.Orca,
		ScratchDir: o.Scratch,
		Nice:       o.Nice,
		NProcs:     o.NProcs,
	}, o.logger)
}

// Logger returns the logger built by Complete, or one that discards everything.
func (o *GlobalOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

// jobArgs joins the files given with --job to the positional arguments.
func jobArgs(jobs, args []string) []string {
	ret := make([]string, 0, len(jobs)+len(args))
	ret = append(ret, jobs...)
	return append(ret, args...)
}
