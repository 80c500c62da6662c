package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rmera/orcaprop/solv"
)

type LogPOptions struct {
	GlobalOptions
	ResultsOptions

	Jobs []string
	Calc solv.LogPOptions
}

func DefaultLogPOptions() *LogPOptions {
	return &LogPOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Calc:          *solv.DefaultLogPOptions(),
	}
}

func NewCmdLogP() *cobra.Command {
	o := DefaultLogPOptions()
	cmd := &cobra.Command{
		Use:     "logp [flags] FILE.xyz...",
		Short:   "Water/1-octanol partition coefficient",
		Example: "orcaprop logp -n 8 mol1.xyz mol2.xyz\norcaprop logp --model smd mol1.xyz",
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

func (o *LogPOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.ResultsOptions.Bind(fs)

	fs.StringSliceVarP(&o.Jobs, "job", "j", o.Jobs, "XYZ files with the molecules (can also be given as arguments)")
	fs.StringVar(&o.Calc.Model, "model", o.Calc.Model, "Solvation model for the estimate: cosmors or smd")
	fs.BoolVar(&o.Calc.NoOpt, "noopt", o.Calc.NoOpt, "Use the input geometry in both solvents, without SMD optimizations (cosmors model only)")
	fs.IntVarP(&o.Calc.Charge, "charge", "c", o.Calc.Charge, "Charge of the system")
	fs.IntVarP(&o.Calc.Multi, "multi", "m", o.Calc.Multi, "Multiplicity of the system")
	fs.StringVar(&o.Calc.ResultsFile, "results", o.Calc.ResultsFile, "File where the values obtained are appended")
}

func (o *LogPOptions) Complete(cmd *cobra.Command, args []string) error {
	o.Jobs = jobArgs(o.Jobs, args)
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *LogPOptions) Validate(args []string) error {
	if len(o.Jobs) == 0 {
		return errors.New("at least one XYZ file is required")
	}
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return o.Calc.Validate()
}

func (o *LogPOptions) Run(ctx context.Context, args []string) error {
	R := solv.NewRunner(o.Handle(), o.out, o.Logger())
	R.KeepOutputs(o.KeepOutputs)
	res, err := R.LogP(ctx, o.Jobs, &o.Calc)
	if err != nil {
		return errors.Wrap(err, "running logP jobs")
	}
	outcomes := make([]jobOutcome, len(res))
	for i, r := range res {
		outcomes[i] = jobOutcome{r.Elapsed, r.Err}
	}
	return o.finish("logp", solv.LogPTable(res), outcomes)
}
