package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/coerce"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Digits int // display precision for conversion to rational
}

// ConvertResult is the JSON payload of the convert command.
type ConvertResult struct {
	From ValueJSON `json:"from"`
	To   ValueJSON `json:"to"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <value> <tag>",
		Short: "Convert a value to another kind",
		Long: `Convert a value to the kind named by tag: ` + tagList() + `.

Conversion to integer truncates toward zero. Conversion of a real to
rational approximates with a continued fraction until the error is within
10^-digits, or at the full working precision when --digits is 0.

Put -- before negative operands so they are not read as flags.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Digits, "digits", "d", 0, "digits to match when approximating a rational (error within 10^-digits), 0 for full precision")

	return cmd
}

func runConvert(opts *ConvertOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := opts.Settings(cmd)
	if err != nil {
		return formatter.Fail("loading settings", err)
	}
	v, err := ParseLiteral(s.Env, args[0])
	if err != nil {
		return formatter.BadOperand(args[0], err)
	}
	to, err := coerce.ParseTag(args[1])
	if err != nil {
		return formatter.Fail("unknown tag", err)
	}

	formatter.VerboseLog("converting %s %s to %s", v.Tag(), v, to)
	out, err := s.Env.Convert(v, to, opts.Digits)
	if err != nil {
		return formatter.Fail("conversion failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ConvertResult{From: valueJSON(v), To: valueJSON(out)})
	}
	formatter.Value(out)
	return nil
}

func tagList() string {
	names := make([]string, 0, len(coerce.Tags()))
	for _, t := range coerce.Tags() {
		names = append(names, t.String()+" ("+t.Code()+")")
	}
	return strings.Join(names, ", ")
}

// CastResult is the JSON payload of the cast command.
type CastResult struct {
	Tag string    `json:"tag"`
	A   ValueJSON `json:"a"`
	B   ValueJSON `json:"b"`
}

// NewCastCommand creates the cast command.
func NewCastCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cast <a> <b>",
		Short: "Show two values converted to their common kind",
		Long: `Convert two values to the kind a binary operation would use for them.

Kinds promote in the order integer, rational, real, complex, interval,
time. Two integers widen to the larger width, unsigned if either is.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCast(rootOpts, args, cmd)
		},
	}
}

func runCast(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := opts.Settings(cmd)
	if err != nil {
		return formatter.Fail("loading settings", err)
	}
	operands := make([]coerce.Value, len(args))
	for i, arg := range args {
		if operands[i], err = ParseLiteral(s.Env, arg); err != nil {
			return formatter.BadOperand(arg, err)
		}
	}

	a, b, err := s.Env.AutoCast(operands[0], operands[1])
	if err != nil {
		return formatter.Fail("cast failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(CastResult{Tag: a.Tag().String(), A: valueJSON(a), B: valueJSON(b)})
	}
	formatter.Value(a)
	formatter.Value(b)
	return nil
}
