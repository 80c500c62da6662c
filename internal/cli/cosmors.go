package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rmera/orcaprop/solv"
)

type CosmoRSOptions struct {
	GlobalOptions
	ResultsOptions

	Jobs []string
	Calc solv.CosmoRSOptions
}

func DefaultCosmoRSOptions() *CosmoRSOptions {
	return &CosmoRSOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Calc:          *solv.DefaultCosmoRSOptions(),
	}
}

func NewCmdCosmoRS() *cobra.Command {
	o := DefaultCosmoRSOptions()
	cmd := &cobra.Command{
		Use:     "cosmors [flags] FILE.xyz...",
		Short:   "Free energy of solvation with COSMO-RS",
		Example: "orcaprop cosmors --method \"B3LYP D4 def2-TZVP\" -n 8 --solvent water mol1.xyz mol2.xyz",
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

func (o *CosmoRSOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.ResultsOptions.Bind(fs)

	fs.StringSliceVarP(&o.Jobs, "job", "j", o.Jobs, "XYZ files with the molecules (can also be given as arguments)")
	fs.StringVar(&o.Calc.Method, "method", o.Calc.Method, "Method for the calculation in vacuum")
	fs.StringVar(&o.Calc.Options, "options", o.Calc.Options, "Extra keywords for the calculation in vacuum (default \"freq KDIIS DAMP SOSCF LSHIFT rijcosx\")")
	fs.StringVar(&o.Calc.Solvent, "solvent", o.Calc.Solvent, "Solvent name")
	fs.StringVar(&o.Calc.SolventFile, "solventfile", o.Calc.SolventFile, "XYZ file with the solvent geometry, used instead of --solvent")
	fs.IntVarP(&o.Calc.Charge, "charge", "c", o.Calc.Charge, "Charge of the system")
	fs.IntVarP(&o.Calc.Multi, "multi", "m", o.Calc.Multi, "Multiplicity of the system")
	fs.BoolVar(&o.Calc.NoVacuum, "novacuum", o.Calc.NoVacuum, "Skip the calculation in vacuum")
}

func (o *CosmoRSOptions) Complete(cmd *cobra.Command, args []string) error {
	o.Jobs = jobArgs(o.Jobs, args)
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *CosmoRSOptions) Validate(args []string) error {
	if len(o.Jobs) == 0 {
		return errors.New("at least one XYZ file is required")
	}
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return o.Calc.Validate()
}

func (o *CosmoRSOptions) Run(ctx context.Context, args []string) error {
	R := solv.NewRunner(o.Handle(), o.out, o.Logger())
	R.KeepOutputs(o.KeepOutputs)
	res, err := R.CosmoRS(ctx, o.Jobs, &o.Calc)
	if err != nil {
		return errors.Wrap(err, "running COSMO-RS jobs")
	}
	outcomes := make([]jobOutcome, len(res))
	for i, r := range res {
		outcomes[i] = jobOutcome{r.Elapsed, r.Err}
	}
	return o.finish("cosmors", solv.CosmoRSTable(res), outcomes)
}
