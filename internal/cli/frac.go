package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/rational"
)

// FracOptions holds flags for the frac command.
type FracOptions struct {
	*RootOptions
	Digits        int
	Mixed         bool
	MaxIterations int
}

// FracResult is the JSON payload of the frac command.
type FracResult struct {
	Value    string `json:"value"`
	Fraction string `json:"fraction"`
	Mixed    string `json:"mixed"`
	Error    string `json:"error"`
}

// NewFracCommand creates the frac command.
func NewFracCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FracOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "frac <value>",
		Short: "Approximate a value by a fraction",
		Long: `Find the simplest fraction within 10^-digits of value (relative to the
value when it exceeds 1) using a continued-fraction expansion. With
--digits 0 the fraction matches the value at the full working precision.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrac(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Digits, "digits", "d", 0, "digits to match (error within 10^-digits), 0 for full precision")
	cmd.Flags().BoolVarP(&opts.Mixed, "mixed", "m", false, "print as a mixed fraction")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "iteration cap, 0 for the default")

	return cmd
}

func runFrac(opts *FracOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := opts.Settings(cmd)
	if err != nil {
		return formatter.Fail("loading settings", err)
	}
	v, err := ParseLiteral(s.Env, arg)
	if err != nil {
		return formatter.BadOperand(arg, err)
	}
	x, err := s.Env.Convert(v, coerce.TagReal, 0)
	if err != nil {
		return formatter.Fail("conversion failed", err)
	}

	var approxOpts []rational.ApproxOption
	if opts.MaxIterations > 0 {
		approxOpts = append(approxOpts, rational.WithMaxIterations(opts.MaxIterations))
	}
	ctx := s.Env.Real
	r, err := rational.Approximate(ctx, x.(coerce.Real).Real(), opts.Digits, approxOpts...)
	if err != nil {
		return formatter.Fail("approximation failed", err)
	}

	back, err := r.Real(ctx)
	if err != nil {
		return formatter.Fail("approximation failed", err)
	}
	diff, err := back.Sub(ctx, x.(coerce.Real).Real())
	if err != nil {
		return formatter.Fail("approximation failed", err)
	}
	formatter.VerboseLog("%s ~ %s, error %s", x, r, diff.Text('e'))

	if formatter.Format == "json" {
		return formatter.Success(FracResult{
			Value:    x.String(),
			Fraction: r.String(),
			Mixed:    r.Mixed(),
			Error:    diff.Text('e'),
		})
	}
	if opts.Mixed {
		return formatter.Success(r.Mixed())
	}
	formatter.Value(coerce.Rational(r))
	return nil
}
