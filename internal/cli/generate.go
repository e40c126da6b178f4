package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"deriv-generator/internal/config"
	"deriv-generator/internal/gen"
	"deriv-generator/internal/manifest"
	"deriv-generator/internal/table"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the dispatch fragments and the stencil manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			opts := runOptions{
				dumpModel: GetFlag(cmd, "dump-model"),
				check:     GetFlag(cmd, "check"),
				verbose:   GetFlag(cmd, "verbose"),
			}

			return runGenerate(cmd.OutOrStdout(), cfg, opts)
		},
	}

	addTableFlags(cmd)
	cmd.Flags().String("output-dir", "", "directory receiving the generated files")
	cmd.Flags().Bool("dump-model", false, "print the parsed table model")
	cmd.Flags().Bool("check", false, "verify the existing stencil manifest matches the tables instead of writing")

	return cmd
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().String("tables", "", "table source file (overrides the config)")
}

type runOptions struct {
	dumpModel bool
	verbose   bool
	check     bool
}

// runGenerate runs the whole pipeline. Files are written only when every
// step succeeded.
func runGenerate(out io.Writer, cfg *config.Config, opts runOptions) error {
	model, err := table.ParseFile(cfg.Tables)
	if err != nil {
		return err
	}

	renderDiagnostics(out, model.Diagnostics, opts.verbose)

	if err := model.Err(); err != nil {
		return fmt.Errorf("%s: %w", cfg.Tables, err)
	}

	if opts.dumpModel {
		spew.Fdump(out, model)
	}

	source := filepath.Base(cfg.Tables)
	generator := gen.NewGenerator(gen.GeneratorConfig{Layout: cfg.Layout(), Source: source})

	result, err := generator.Generate(model)
	if err != nil {
		return err
	}

	if opts.check {
		return checkManifest(out, cfg, result.Stencils)
	}

	stencils, err := manifest.FromSpecs(source, result.Stencils).File(cfg.Outputs.Manifest)
	if err != nil {
		return err
	}

	files := append(result.Files(cfg.OutputNames()), stencils)

	if err := gen.WriteFiles(files, cfg.OutputDir); err != nil {
		return err
	}

	for _, f := range files {
		log.Debugf("wrote %s (%d bytes)", filepath.Join(cfg.OutputDir, f.Filename), len(f.Content))
	}

	color.New(color.FgGreen).Fprintf(out, "generated %d files with %d stencil functions in %s\n",
		len(files), len(result.Stencils), cfg.OutputDir)

	return nil
}

// checkManifest fails when the manifest on disk lists other stencils than
// the tables produce now.
func checkManifest(out io.Writer, cfg *config.Config, specs []gen.GeneratedFunctionSpec) error {
	path := filepath.Join(cfg.OutputDir, cfg.Outputs.Manifest)

	existing, err := manifest.LoadFile(path)
	if err != nil {
		return err
	}

	if err := existing.Check(specs); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	color.New(color.FgGreen).Fprintf(out, "%s is up to date (%d stencil functions)\n", path, len(specs))

	return nil
}

// loadSelections parses the configured tables into initializer selections.
func loadSelections(cfg *config.Config) ([]gen.Selection, error) {
	model, err := table.ParseFile(cfg.Tables)
	if err != nil {
		return nil, err
	}

	if err := model.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Tables, err)
	}

	sels, err := gen.BuildSelections(cfg.Layout(), model)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Tables, err)
	}

	return sels, nil
}
