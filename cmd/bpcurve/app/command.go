package app

import (
	"errors"
	"fmt"

	"github.com/npillmayer/bpcurve/curvefile"
	"github.com/npillmayer/bpcurve/editor"
	"github.com/spf13/cobra"
)

// NewCommand creates the bpcurve root command with all sub-commands.
func NewCommand() *cobra.Command {
	opts := NewOptions()
	cmd := &cobra.Command{
		Use:   "bpcurve",
		Short: "Edit the number of breakpoints of a sensor calibration curve",
		Long: `bpcurve removes breakpoints from or inserts breakpoints into a piecewise
linear calibration curve, keeping its shape as close to the original as possible.
Breakpoints are removed where the curve is nearly straight and inserted where it
bends most.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			opts.ApplyTrace()
			return nil
		},
	}
	opts.AddFlags(cmd.PersistentFlags())
	cmd.AddCommand(newShowCommand(opts), newAdjustCommand(opts), newEditCommand(opts))
	return cmd
}

func newShowCommand(opts *Options) *cobra.Command {
	var angles bool
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the breakpoints of a curve file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ed, err := loadCurve(opts, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writeHeader(out, c.Header)
			writePoints(out, ed.Points())
			if angles && ed.PointCount() >= editor.MinAnglePoints {
				ap, err := ed.Angles()
				if err != nil {
					return err
				}
				writeAngles(out, ap)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&angles, "angles", false, "print the turning angles at all junctions")
	return cmd
}

func newAdjustCommand(opts *Options) *cobra.Command {
	var (
		delta, target int
		outFile       string
		withPlot      bool
	)
	cmd := &cobra.Command{
		Use:   "adjust FILE",
		Short: "Remove or insert breakpoints and write the resulting curve",
		Example: `  bpcurve adjust --delta -10 sensor.340 --out sensor-87.340
  bpcurve adjust --target 200 --divider 4 sensor.340`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if fs.Changed("delta") == fs.Changed("target") {
				return errors.New("exactly one of --delta or --target is required")
			}
			c, ed, err := loadCurve(opts, args[0])
			if err != nil {
				return err
			}
			if fs.Changed("delta") {
				err = ed.AdjustCount(delta)
			} else {
				err = ed.AdjustTo(target)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c.Points = ed.Points()
			if outFile != "" {
				if err := curvefile.WriteFile(outFile, c); err != nil {
					return err
				}
			} else if err := curvefile.Write(out, c); err != nil {
				return err
			}
			if withPlot {
				plot(out, c.Points, plotWidth, plotHeight)
			}
			if outFile != "" {
				writeStatus(out, ed)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&delta, "delta", 0, "number of breakpoints to insert, negative to remove")
	fs.IntVar(&target, "target", 0, "number of breakpoints the result should have")
	fs.StringVarP(&outFile, "out", "o", "", "output file, default is standard output")
	fs.BoolVar(&withPlot, "plot", false, "plot the resulting curve")
	return cmd
}

func newEditCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a curve interactively",
		Long: `edit reads commands from standard input, one per line:

  +[k]         insert k breakpoints (default 1)
  -[k]         remove k breakpoints (default 1)
  =n           adjust to n breakpoints
  reset        restore the curve as loaded
  divider v    set the section divider, possible until the first edit
  show         print the breakpoints
  angles       print the turning angles
  plot         plot the current curve
  write FILE   write the current curve to FILE
  quit         leave the editor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ed, err := loadCurve(opts, args[0])
			if err != nil {
				return err
			}
			s := newSession(ed, c, cmd.OutOrStdout())
			return s.run(cmd.InOrStdin())
		},
	}
}

func loadCurve(opts *Options, name string) (*curvefile.Curve, *editor.Editor, error) {
	c, err := curvefile.ReadFile(name)
	if err != nil {
		return nil, nil, err
	}
	ed, err := opts.NewEditor()
	if err != nil {
		return nil, nil, err
	}
	if err := ed.Load(c.Points); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, ed, nil
}
