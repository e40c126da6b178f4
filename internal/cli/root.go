package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"deriv-generator/internal/config"
)

// Version is filled in by the release build.
var Version string

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "deriv-generator",
		Short: "Generate derivative dispatch code from method tables.",
		Long: `deriv-generator reads the method tables of the derivative operators and
writes the C++ dispatchers, entry points and option initializer for them,
together with stencils.yaml listing the stencil functions they call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if GetFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}

			if GetFlag(cmd, "no-color") {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ./derivgen.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")

	root.AddCommand(NewGenerateCommand())
	root.AddCommand(NewResolveCommand())
	root.AddCommand(NewWatchCommand())
	root.AddCommand(NewVersionCommand())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprint(os.Stderr, FormatError(err))
		os.Exit(1)
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Report the version of this executable",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			switch info, ok := debug.ReadBuildInfo(); {
			case Version != "":
				fmt.Fprintf(out, "deriv-generator %s\n", Version)
			case ok:
				fmt.Fprintf(out, "deriv-generator %s\n", info.Main.Version)
			default:
				fmt.Fprintln(out, "deriv-generator (unknown version)")
			}
		},
	}
}

// GetFlag returns a boolean flag, treating a lookup failure as unset.
func GetFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}

	return v
}

// GetString returns a string flag, or "" when it does not exist.
func GetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}

	return v
}

// loadConfig reads the config named by --config and applies the command's
// overriding flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(GetString(cmd, "config"))
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("tables") {
		cfg.Tables = GetString(cmd, "tables")
	}

	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = GetString(cmd, "output-dir")
	}

	log.Debugf("config: %+v", *cfg)

	return cfg, nil
}
