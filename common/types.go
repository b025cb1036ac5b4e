package common

import "fmt"

// TableInfo represents the full path for a BigQuery table.
type TableInfo struct {
	ProjectID string `yaml:"projectId"`
	DatasetID string `yaml:"datasetId"`
	TableID   string `yaml:"tableId"`
}

// FullName returns the backtick-quoted table reference used in query text.
func (t TableInfo) FullName() string {
	return fmt.Sprintf("`%s.%s.%s`", t.ProjectID, t.DatasetID, t.TableID)
}

func (t TableInfo) String() string {
	return fmt.Sprintf("%s.%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}
