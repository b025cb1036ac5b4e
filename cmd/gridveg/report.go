package main

import (
	"github.com/spf13/cobra"

	"github.com/mpgranch/gridveg-tools/logger"
	"github.com/mpgranch/gridveg-tools/report"
)

func newReportCmd(root *rootFlags) *cobra.Command {
	var (
		targetTable   string
		metadataTable string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report date discrepancies between the target table and the survey metadata",
		Long: `report compares every survey_ID/date combination in the target table
against the survey metadata and summarizes the matches, date mismatches and
surveys missing from the metadata, including the year-offset pattern of the
mismatches. It never modifies any data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			if targetTable != "" {
				cfg.TargetTable = targetTable
			}

			if metadataTable != "" {
				cfg.MetadataTable = metadataTable
			}

			ctx, cleanup, err := setupRun(cmd.Context(), cfg, "report")
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := report.NewBigQueryReportStore(ctx, cfg.Target(), cfg.Metadata())
			if err != nil {
				return err
			}
			defer store.Close()

			_, err = report.NewService(logger.FromContext, store).Run(ctx)

			return err
		},
	}

	cmd.Flags().StringVar(&targetTable, "target-table", "", "table to compare (overrides config)")
	cmd.Flags().StringVar(&metadataTable, "metadata-table", "", "survey metadata table (overrides config)")

	return cmd
}
