package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/numerr"
)

// RadixOptions holds flags for the radix command.
type RadixOptions struct {
	*RootOptions
	Base  int
	Roman bool
}

// RadixResult is the JSON payload of the radix command.
type RadixResult struct {
	Value string `json:"value"`
	Bin   string `json:"bin,omitempty"`
	Oct   string `json:"oct,omitempty"`
	Dec   string `json:"dec,omitempty"`
	Hex   string `json:"hex,omitempty"`
	Roman string `json:"roman,omitempty"`
}

var radixBases = []struct {
	base  int
	label string
}{
	{2, "bin"},
	{8, "oct"},
	{10, "dec"},
	{16, "hex"},
}

// NewRadixCommand creates the radix command.
func NewRadixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RadixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "radix <value>",
		Short: "Show an integer in binary, octal, decimal and hex",
		Long: `Convert value to an integer in the current mode and print it in each
base. Signed values are printed with a minus sign; unsigned values show their
bit pattern.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRadix(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Base, "base", "b", 0, "only this base (2, 8, 10 or 16)")
	cmd.Flags().BoolVar(&opts.Roman, "roman", false, "also print Roman numerals")

	return cmd
}

func runRadix(opts *RadixOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := opts.Settings(cmd)
	if err != nil {
		return formatter.Fail("loading settings", err)
	}
	switch opts.Base {
	case 0, 2, 8, 10, 16:
	default:
		return formatter.Fail("invalid base", numerr.Domain("cli.radix", "base must be 2, 8, 10 or 16, got %d", opts.Base))
	}

	v, err := ParseLiteral(s.Env, arg)
	if err != nil {
		return formatter.BadOperand(arg, err)
	}
	iv, err := s.Env.Convert(v, coerce.TagInteger, 0)
	if err != nil {
		return formatter.Fail("conversion failed", err)
	}
	x := iv.(coerce.Integer).Int()

	result := RadixResult{Value: x.String()}
	if opts.Roman {
		result.Roman = x.Roman()
	}
	fields := map[int]*string{2: &result.Bin, 8: &result.Oct, 10: &result.Dec, 16: &result.Hex}
	for _, b := range radixBases {
		if opts.Base == 0 || opts.Base == b.base {
			*fields[b.base] = x.Text(b.base)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	if opts.Base != 0 {
		fmt.Fprintln(formatter.Writer, *fields[opts.Base])
	} else {
		for _, b := range radixBases {
			fmt.Fprintf(formatter.Writer, "%s  %s\n", b.label, *fields[b.base])
		}
	}
	if opts.Roman {
		fmt.Fprintf(formatter.Writer, "roman  %s\n", result.Roman)
	}
	return nil
}
