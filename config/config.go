// Package config loads tool configuration from an optional YAML file with
// GRIDVEG_* environment variables as fallbacks for every field.
package config

import (
	"os"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mpgranch/gridveg-tools/common"
)

// Defaults for the MPG Ranch warehouse this tool was built for.
const (
	DefaultProjectID     = "mpg-data-warehouse"
	DefaultDatasetID     = "vegetation_point_intercept_gridVeg"
	DefaultTargetTable   = "gridVeg_additional_species"
	DefaultMetadataTable = "gridVeg_survey_metadata"
	DefaultThreshold     = "2024-12-31"
)

type Config struct {
	ProjectID     string `yaml:"projectId"`
	DatasetID     string `yaml:"datasetId"`
	TargetTable   string `yaml:"targetTable"`
	MetadataTable string `yaml:"metadataTable"`
	BackupBucket  string `yaml:"backupBucket"`
	Threshold     string `yaml:"threshold"`
}

// Load reads the YAML file at path when path is non-empty, then fills any
// unset field from the environment and finally from the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", path)
		}
	}

	cfg.applyFallbacks()

	return &cfg, nil
}

func (c *Config) applyFallbacks() {
	if c.ProjectID == "" {
		c.ProjectID = common.GetEnv(common.EnvProjectID, DefaultProjectID)
	}

	if c.DatasetID == "" {
		c.DatasetID = common.GetEnv(common.EnvDatasetID, DefaultDatasetID)
	}

	if c.TargetTable == "" {
		c.TargetTable = common.GetEnv(common.EnvTargetTable, DefaultTargetTable)
	}

	if c.MetadataTable == "" {
		c.MetadataTable = common.GetEnv(common.EnvMetadataTable, DefaultMetadataTable)
	}

	if c.BackupBucket == "" {
		c.BackupBucket = common.GetEnv(common.EnvBackupBucket, "")
	}

	if c.Threshold == "" {
		c.Threshold = common.GetEnv(common.EnvThreshold, DefaultThreshold)
	}
}

func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return errors.New("project id is required")
	}

	if c.DatasetID == "" {
		return errors.New("dataset id is required")
	}

	if c.TargetTable == "" {
		return errors.New("target table is required")
	}

	if c.MetadataTable == "" {
		return errors.New("metadata table is required")
	}

	if _, err := c.ParseThreshold(); err != nil {
		return err
	}

	return nil
}

// ParseThreshold parses the threshold date. Rows dated after it are treated
// as corrupted.
func (c *Config) ParseThreshold() (civil.Date, error) {
	threshold, err := civil.ParseDate(c.Threshold)
	if err != nil {
		return civil.Date{}, errors.Wrapf(err, "invalid threshold %q, expected %s", c.Threshold, common.DateFormat)
	}

	return threshold, nil
}

func (c *Config) Target() common.TableInfo {
	return common.TableInfo{
		ProjectID: c.ProjectID,
		DatasetID: c.DatasetID,
		TableID:   c.TargetTable,
	}
}

func (c *Config) Metadata() common.TableInfo {
	return common.TableInfo{
		ProjectID: c.ProjectID,
		DatasetID: c.DatasetID,
		TableID:   c.MetadataTable,
	}
}
