package cli

import (
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"deriv-generator/internal/config"
	"deriv-generator/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the tables or the config change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			opts := runOptions{verbose: GetFlag(cmd, "verbose")}
			out := cmd.OutOrStdout()

			if err := runGenerate(out, cfg, opts); err != nil {
				log.Errorf("initial generation failed: %v", err)
			}

			files := watchedFiles(cmd, cfg)
			tables := cfg.Tables

			var fw *watch.FileWatcher

			fw, err = watch.NewFileWatcher(files, watch.DefaultDelay, func(changed []string) error {
				log.Infof("change in %v, regenerating", changed)
				return regenerate(cmd, out, opts, fw, &tables)
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			log.Infof("watching %v, press Ctrl+C to stop", files)

			return fw.Run(ctx)
		},
	}

	addTableFlags(cmd)
	cmd.Flags().String("output-dir", "", "directory receiving the generated files")

	return cmd
}

// watchedFiles lists the table source and, when one was given, the config
// file.
func watchedFiles(cmd *cobra.Command, cfg *config.Config) []string {
	files := []string{cfg.Tables}
	if path := GetString(cmd, "config"); path != "" {
		files = append(files, path)
	}

	return files
}

type fileSet interface {
	Watch(files []string) error
}

// regenerate reloads the config, follows the table source when the config
// moved it, and reruns generation.
func regenerate(cmd *cobra.Command, out io.Writer, opts runOptions, fs fileSet, tables *string) error {
	latest, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if latest.Tables != *tables {
		log.Infof("tables moved from %s to %s", *tables, latest.Tables)

		if err := fs.Watch(watchedFiles(cmd, latest)); err != nil {
			return err
		}

		*tables = latest.Tables
	}

	return runGenerate(out, latest, opts)
}
