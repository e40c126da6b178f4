package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"deriv-generator/internal/gen"
)

var ErrUnresolvedSchemes = errors.New("some configured schemes are not available")

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [options-file]",
		Short: "Show which method each operator would use for a set of options",
		Long: `resolve applies the initializer's lookup rules to an options file with
ddx, ddy and ddz sections and prints the method chosen for every operator.
Without a file every operator falls back to its default scheme.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			sels, err := loadSelections(cfg)
			if err != nil {
				return err
			}

			opts := viper.New()

			if len(args) == 1 {
				opts.SetConfigFile(args[0])

				if err := opts.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read options file %s: %w", args[0], err)
				}
			}

			return runResolve(cmd.OutOrStdout(), cmd.ErrOrStderr(), sels, opts)
		},
	}

	addTableFlags(cmd)

	return cmd
}

// section returns the options of one direction, or nil when absent.
func section(opts *viper.Viper, name string) gen.OptionSection {
	if sub := opts.Sub(name); sub != nil {
		return sub
	}

	return nil
}

func runResolve(out, errOut io.Writer, sels []gen.Selection, opts *viper.Viper) error {
	name := color.New(color.Bold)
	failed := 0

	for _, sel := range sels {
		scheme := sel.Resolve(section(opts, sel.Section))

		opt, err := sel.Match(scheme)
		if err != nil {
			fmt.Fprintf(errOut, "%s.%s: %s", sel.Section, sel.Label, FormatError(err))
			failed++

			continue
		}

		fmt.Fprintf(out, "%s.%s = %s (%s: %s)\n",
			sel.Section, sel.Label, name.Sprint(scheme), opt.Method, opt.Description)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnresolvedSchemes, failed, len(sels))
	}

	return nil
}
