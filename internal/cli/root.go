package cli

import (
	"github.com/spf13/cobra"
)

// NewCmdRoot returns the orcaprop command with all its subcommands.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orcaprop [command] [flags]",
		Short: "orcaprop obtains thermodynamic and solvation properties with ORCA.",
		Long: "orcaprop runs ORCA to obtain free energies of solvation (COSMO-RS), water/octanol partition\n" +
			"coefficients and free energies in the liquid phase. It also converts ORCA optimizations\n" +
			"and scans to XYZ trajectories, and runs ORCA input files.\n\n" +
			"The ORCA executable is ${ORCA_PATH}/orca unless --orca is given. ORCAPROP_SCRATCH, ORCAPROP_NICE,\n" +
			"ORCAPROP_NPROCS and ORCAPROP_LOG_LEVEL give the defaults for the corresponding flags.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewCmdCosmoRS())
	cmd.AddCommand(NewCmdLogP())
	cmd.AddCommand(NewCmdLiquid())
	cmd.AddCommand(NewCmdOrca2XYZ())
	cmd.AddCommand(NewCmdStart())
	cmd.AddCommand(NewCmdVersion())
	return cmd
}
