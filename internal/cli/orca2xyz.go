package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rmera/orcaprop"
	"github.com/rmera/orcaprop/qm"
	"github.com/rmera/orcaprop/traj"
)

const (
	JobOpt  = "opt"
	JobScan = "scan"
)

// Orca2XYZOptions are the options of the command that extracts the
// geometries of optimizations and relaxed scans.
type Orca2XYZOptions struct {
	Type  string   `validate:"oneof=opt scan"`
	Files []string `validate:"min=1"`
	Zstd  bool

	out io.Writer
}

func DefaultOrca2XYZOptions() *Orca2XYZOptions {
	return &Orca2XYZOptions{
		Type: JobOpt,
	}
}

func NewCmdOrca2XYZ() *cobra.Command {
	o := DefaultOrca2XYZOptions()
	cmd := &cobra.Command{
		Use:     "orca2xyz [flags] FILE.out...",
		Short:   "Write the geometries of ORCA optimizations or scans as XYZ trajectories",
		Example: "orcaprop orca2xyz -t scan -f scan1.out -f scan2.out",
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

func (o *Orca2XYZOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Type, "type", "t", o.Type, "Kind of job: opt (geometry optimization) or scan (relaxed scan)")
	fs.StringSliceVarP(&o.Files, "files", "f", o.Files, "ORCA output files (can also be given as arguments)")
	fs.BoolVar(&o.Zstd, "zstd", o.Zstd, "Write zstd-compressed trajectories (.xyz.zst)")
}

func (o *Orca2XYZOptions) Complete(cmd *cobra.Command, args []string) error {
	o.Files = jobArgs(o.Files, args)
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *Orca2XYZOptions) Validate(args []string) error {
	if err := validate.Struct(o); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) && verr[0].Field() == "Files" {
			return errors.New("at least one ORCA output file is required")
		}
		return errors.Wrap(err, "invalid options")
	}
	return nil
}

// Run writes one trajectory per output file, named after it, with the
// extension .xyz (.xyz.zst if compressed).
func (o *Orca2XYZOptions) Run(ctx context.Context, args []string) error {
	for _, f := range o.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		name, err := o.convert(f)
		if err != nil {
			return err
		}
		if o.out != nil {
			fmt.Fprintf(o.out, "%s -> %s\n", f, name)
		}
	}
	return nil
}

func (o *Orca2XYZOptions) convert(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrap(err, "ORCA output file not found")
	}
	out := qm.Output(data)
	var frames []traj.Frame
	if o.Type == JobScan {
		frames, err = qm.ScanFrames(out)
	} else {
		frames, err = qm.OptFrames(out)
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading frames from %s", file)
	}
	name := orcaprop.StripExt(file) + ".xyz"
	if o.Zstd {
		name += ".zst"
	}
	if err := traj.WriteFrames(name, frames); err != nil {
		return "", errors.Wrapf(err, "writing %s", name)
	}
	return name, nil
}
