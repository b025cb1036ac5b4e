package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mpgranch/gridveg-tools/backup"
	"github.com/mpgranch/gridveg-tools/datefix/dal"
	"github.com/mpgranch/gridveg-tools/datefix/service"
	"github.com/mpgranch/gridveg-tools/logger"
)

func newFixDatesCmd(root *rootFlags) *cobra.Command {
	var (
		targetTable   string
		metadataTable string
		backupBucket  string
		threshold     string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "fix-dates",
		Short: "Fix corrupted survey dates from the survey metadata",
		Long: `fix-dates finds rows in the target table whose date is beyond the
corruption threshold, resolves the correct date from the survey metadata by
survey_ID, and rewrites date and year in place. The table is backed up to
Cloud Storage first; without --dry-run the update is applied and validated.`,
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

			if backupBucket != "" {
				cfg.BackupBucket = backupBucket
			}

			if threshold != "" {
				cfg.Threshold = threshold
			}

			if cfg.BackupBucket == "" {
				return errors.New("a backup bucket is required, set --backup-bucket or GRIDVEG_BACKUP_BUCKET")
			}

			thresholdDate, err := cfg.ParseThreshold()
			if err != nil {
				return err
			}

			ctx, cleanup, err := setupRun(cmd.Context(), cfg, "fix_dates")
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := dal.NewBigQuerySurveyStore(ctx, cfg.Target(), cfg.Metadata())
			if err != nil {
				return err
			}
			defer store.Close()

			extractor, err := backup.NewBigQueryExtractor(ctx, cfg.ProjectID)
			if err != nil {
				return err
			}
			defer extractor.Close()

			objectStore, err := backup.NewGCSObjectStore(ctx)
			if err != nil {
				return err
			}
			defer objectStore.Close()

			agent := backup.NewAgent(logger.FromContext, extractor, objectStore, cfg.BackupBucket)
			svc := service.NewService(logger.FromContext, store, agent)

			result, err := svc.Run(ctx, service.RunParams{
				Target:    cfg.Target(),
				Threshold: thresholdDate,
				DryRun:    dryRun,
			})

			l := logger.FromContext(ctx)
			l.Infof("run finished in state %s: identified=%d matched=%d unmatched=%d applied=%d",
				result.State, result.Identified, result.Matched, result.Unmatched, result.Applied)

			if result.BackupLocation != "" {
				l.Infof("backup location: %s", result.BackupLocation)
			}

			return err
		},
	}

	cmd.Flags().StringVar(&targetTable, "target-table", "", "table to fix (overrides config)")
	cmd.Flags().StringVar(&metadataTable, "metadata-table", "", "survey metadata table (overrides config)")
	cmd.Flags().StringVar(&backupBucket, "backup-bucket", "", "GCS bucket for pre-mutation backups")
	cmd.Flags().StringVar(&threshold, "threshold", "", "dates after this YYYY-MM-DD are corrupted (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the correction without applying it")

	return cmd
}
