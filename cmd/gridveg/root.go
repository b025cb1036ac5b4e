package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mpgranch/gridveg-tools/config"
	"github.com/mpgranch/gridveg-tools/logger"
)

type rootFlags struct {
	configPath string
	projectID  string
	datasetID  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "gridveg",
		Short: "Maintenance tools for the gridVeg vegetation survey warehouse",
		Long: `gridveg maintains the vegetation point-intercept survey tables in
BigQuery. It can report date discrepancies between the species table and the
survey metadata, back tables up to Cloud Storage, and fix corrupted survey
dates from the metadata reference.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.projectID, "project", "", "GCP project id (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.datasetID, "dataset", "", "BigQuery dataset id (overrides config)")

	cmd.AddCommand(
		newFixDatesCmd(flags),
		newBackupCmd(flags),
		newReportCmd(flags),
	)

	return cmd
}

// loadConfig builds the effective config: file, then env, then defaults,
// then command-line overrides on top.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.projectID != "" {
		cfg.ProjectID = f.projectID
	}

	if f.datasetID != "" {
		cfg.DatasetID = f.datasetID
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupRun initializes run logging and returns a context carrying the run
// logger, plus a cleanup func that flushes and closes the log sinks.
func setupRun(ctx context.Context, cfg *config.Config, runName string) (context.Context, func(), error) {
	logging, err := logger.NewLogging(ctx, cfg.ProjectID, runName)
	if err != nil {
		return nil, nil, err
	}

	l := logger.NewLogger()
	l.SetLabels(map[string]string{
		"feature": "gridveg-datefix",
		"run":     runName,
	})

	ctx = logger.IntoContext(ctx, l)

	return ctx, func() { _ = logging.Close() }, nil
}
