package cli

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rmera/orcaprop"
	"github.com/rmera/orcaprop/chemplot"
	"github.com/rmera/orcaprop/solv"
)

type LiquidOptions struct {
	GlobalOptions
	ResultsOptions

	Jobs []string
	Plot bool
	Calc solv.LiquidOptions
}

func DefaultLiquidOptions() *LiquidOptions {
	return &LiquidOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Calc:          *solv.DefaultLiquidOptions(),
	}
}

func NewCmdLiquid() *cobra.Command {
	o := DefaultLiquidOptions()
	cmd := &cobra.Command{
		Use:     "liquid [flags] JOB...",
		Short:   "Gibbs free energy in the liquid phase",
		Long:    "Gibbs free energy in the liquid phase with the free volume model.\nEach JOB is a name, with or without the .xyz extension: JOB.xyz must contain the geometry and JOB.hess the Hessian computed by ORCA.",
		Example: "orcaprop liquid -t 298 -t 310 --plot water",
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

func (o *LiquidOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.ResultsOptions.Bind(fs)

	fs.StringSliceVarP(&o.Jobs, "job", "j", o.Jobs, "Job names (can also be given as arguments)")
	fs.IntVarP(&o.Calc.Charge, "charge", "c", o.Calc.Charge, "Charge of the system")
	fs.IntVarP(&o.Calc.Multi, "multi", "m", o.Calc.Multi, "Multiplicity of the system")
	fs.Float64SliceVarP(&o.Calc.Temperatures, "temperature", "t", o.Calc.Temperatures, "Temperatures, in K")
	fs.BoolVar(&o.Plot, "plot", o.Plot, "Plot the free energies in gas and liquid against the temperature, to JOB.png")
}

func (o *LiquidOptions) Complete(cmd *cobra.Command, args []string) error {
	o.Jobs = jobArgs(o.Jobs, args)
	for i, j := range o.Jobs {
		if ext := filepath.Ext(j); ext == ".xyz" || ext == ".hess" {
			o.Jobs[i] = orcaprop.StripExt(j)
		}
	}
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *LiquidOptions) Validate(args []string) error {
	if len(o.Jobs) == 0 {
		return errors.New("at least one job is required")
	}
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return o.Calc.Validate()
}

func (o *LiquidOptions) Run(ctx context.Context, args []string) error {
	R := solv.NewRunner(o.Handle(), o.out, o.Logger())
	R.KeepOutputs(o.KeepOutputs)
	res, err := R.LiquidFreeEnergy(ctx, o.Jobs, &o.Calc)
	if err != nil {
		return errors.Wrap(err, "running liquid free energy jobs")
	}
	if o.Plot {
		for _, r := range res {
			if r.Err != nil {
				continue
			}
			name := r.Job + ".png"
			if err := chemplot.FreeEnergyPlot(r.Name, name, r.Temperatures, r.GGas, r.GLiquid); err != nil {
				o.Logger().Error("can't plot free energies", zap.String("job", r.Job), zap.Error(err))
				continue
			}
			o.Logger().Debug("free energies plotted", zap.String("job", r.Job), zap.String("file", name))
		}
	}
	outcomes := make([]jobOutcome, len(res))
	for i, r := range res {
		outcomes[i] = jobOutcome{r.Elapsed, r.Err}
	}
	return o.finish("liquid", solv.LiquidTable(res), outcomes)
}
