package cli

import (
	"fmt"
	"log/slog"
	"math/big"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/zn"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // settings file path

	// Overrides applied on top of the settings file.
	Bits      int
	Unsigned  bool
	Division  string
	Negation  string
	Precision int
	Modulus   string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the numtower CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "numtower",
		Short: "numtower - a numeric tower calculator",
		Long: `Arithmetic over fixed-width integers, exact rationals, arbitrary-precision
reals, complex numbers, intervals and Julian dates, with conversion between
every pair of kinds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.Config, "config", "", "settings file (YAML)")
	flags.IntVar(&opts.Bits, "bits", 0, "integer width in bits, 0 for unbounded")
	flags.BoolVar(&opts.Unsigned, "unsigned", false, "unsigned integers")
	flags.StringVar(&opts.Division, "division", "floor", "integer division rounding (floor|c)")
	flags.StringVar(&opts.Negation, "negation", "identity", "negation of MIN and 0 (identity|zero|swap)")
	flags.IntVar(&opts.Precision, "precision", 32, "significant digits of real arithmetic")
	flags.StringVar(&opts.Modulus, "modulus", "1", "reduce integer results modulo this value, 1 for off")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewCastCommand(opts))
	cmd.AddCommand(NewFracCommand(opts))
	cmd.AddCommand(NewRadixCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewModeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// Settings loads the settings file and applies the flags the user set.
func (o *RootOptions) Settings(cmd *cobra.Command) (calc.Settings, error) {
	s, err := config.LoadSettings(o.Config)
	if err != nil {
		return s, err
	}
	changed := cmd.Flags().Changed

	if changed("bits") {
		if s, err = s.WithBits(o.Bits); err != nil {
			return s, err
		}
	}
	if changed("unsigned") {
		s = s.WithSigned(!o.Unsigned)
	}
	if changed("division") {
		d, err := zn.ParseDivision(o.Division)
		if err != nil {
			return s, err
		}
		s = s.WithDivision(d)
	}
	if changed("negation") {
		p, err := zn.ParseNegation(o.Negation)
		if err != nil {
			return s, err
		}
		s = s.WithNegation(p)
	}
	if changed("precision") {
		if s, err = s.WithPrecision(o.Precision); err != nil {
			return s, err
		}
	}
	if changed("modulus") {
		m, ok := new(big.Int).SetString(o.Modulus, 0)
		if !ok {
			return s, fmt.Errorf("invalid modulus %q", o.Modulus)
		}
		if s, err = s.WithModulus(m); err != nil {
			return s, err
		}
	}

	slog.Debug("settings", "int", s.Env.Int.String(), "precision", s.Env.Real.Digits(), "modulus", s.Modulus.String())
	return s, nil
}
