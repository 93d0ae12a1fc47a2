package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/config"
)

// ModeResult is the JSON payload of the mode command.
type ModeResult struct {
	*config.File
	Modulus string `json:"modulus"`
}

// NewModeCommand creates the mode command.
func NewModeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mode",
		Short: "Show the effective settings",
		Long: `Print the settings in effect after reading --config and applying the
mode flags. The text output is a valid settings file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(rootOpts, cmd)
		},
	}
}

func runMode(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := opts.Settings(cmd)
	if err != nil {
		return formatter.Fail("loading settings", err)
	}
	f := config.FromSettings(s)

	if formatter.Format == "json" {
		return formatter.Success(ModeResult{File: f, Modulus: f.Modulus})
	}
	data, err := f.Marshal()
	if err != nil {
		return formatter.Fail("rendering settings", err)
	}
	_, err = formatter.Writer.Write(data)
	return err
}
