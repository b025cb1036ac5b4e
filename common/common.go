package common

import (
	"os"
)

const (
	// DateFormat is the canonical format for survey dates.
	DateFormat = "2006-01-02"

	// BackupTimestampFormat namespaces backup objects by run time.
	BackupTimestampFormat = "20060102_150405"
)

// Environment variable names recognized by the tools.
const (
	EnvProjectID     = "GRIDVEG_PROJECT_ID"
	EnvDatasetID     = "GRIDVEG_DATASET_ID"
	EnvTargetTable   = "GRIDVEG_TARGET_TABLE"
	EnvMetadataTable = "GRIDVEG_METADATA_TABLE"
	EnvBackupBucket  = "GRIDVEG_BACKUP_BUCKET"
	EnvThreshold     = "GRIDVEG_THRESHOLD"
)

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
