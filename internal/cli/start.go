package cli

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// StartOptions are the options of the command that runs ORCA input files
// as they are, and collects their results.
type StartOptions struct {
	GlobalOptions

	Inputs  []string
	DestDir string
}

func DefaultStartOptions() *StartOptions {
	return &StartOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdStart() *cobra.Command {
	o := DefaultStartOptions()
	cmd := &cobra.Command{
		Use:   "start [flags] FILE.inp...",
		Short: "Run ORCA input files, including Compound jobs",
		Long: "Run ORCA input files one after the other. The %pal block of each file is set to the number of processes requested.\n" +
			"Each job runs in a scratch directory, and the files it produces are moved to the destination directory, named after the input.\n" +
			"The steps of Compound jobs are renamed after their #Alias_Step comments.",
		Example: "orcaprop start -n 12 job1.inp job2.inp",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *StartOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.DestDir, "dest", "d", o.DestDir, "Directory for the outputs (default the current directory)")
}

func (o *StartOptions) Complete(cmd *cobra.Command, args []string) error {
	o.Inputs = args
	if o.DestDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		o.DestDir = wd
	}
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *StartOptions) Validate(args []string) error {
	if len(o.Inputs) == 0 {
		return errors.New("at least one input file is required")
	}
	if st, err := os.Stat(o.DestDir); err != nil || !st.IsDir() {
		return errors.Errorf("destination %s is not a directory", o.DestDir)
	}
	return o.GlobalOptions.Validate(args)
}

// Run runs every input in order. A failed job is logged and the next one is
// started, but the command then fails.
func (o *StartOptions) Run(ctx context.Context, args []string) error {
	h := o.Handle()
	failed := 0
	for _, inp := range o.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		moved, err := h.RunInputFile(ctx, inp, o.DestDir)
		if err != nil {
			failed++
			o.Logger().Error("job failed", zap.String("input", inp), zap.Error(err))
			continue
		}
		o.Logger().Info("job finished", zap.String("input", inp), zap.Strings("files", moved))
	}
	if failed > 0 {
		return errors.Errorf("%d of %d jobs failed", failed, len(o.Inputs))
	}
	return nil
}
