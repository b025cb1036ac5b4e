package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mpgranch/gridveg-tools/backup"
	"github.com/mpgranch/gridveg-tools/common"
	"github.com/mpgranch/gridveg-tools/logger"
)

func newBackupCmd(root *rootFlags) *cobra.Command {
	var (
		table        string
		backupBucket string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot a BigQuery table to Cloud Storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			if table == "" {
				table = cfg.TargetTable
			}

			if backupBucket != "" {
				cfg.BackupBucket = backupBucket
			}

			if cfg.BackupBucket == "" {
				return errors.New("a backup bucket is required, set --backup-bucket or GRIDVEG_BACKUP_BUCKET")
			}

			ctx, cleanup, err := setupRun(cmd.Context(), cfg, "backup")
			if err != nil {
				return err
			}
			defer cleanup()

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

			location, err := agent.BackupTable(ctx, common.TableInfo{
				ProjectID: cfg.ProjectID,
				DatasetID: cfg.DatasetID,
				TableID:   table,
			})
			if err != nil {
				return err
			}

			logger.FromContext(ctx).Infof("backup location: %s", location)

			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table to back up (defaults to the target table)")
	cmd.Flags().StringVar(&backupBucket, "backup-bucket", "", "GCS bucket for backups")

	return cmd
}
