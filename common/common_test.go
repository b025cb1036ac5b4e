package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableInfoFullName(t *testing.T) {
	table := TableInfo{
		ProjectID: "mpg-data-warehouse",
		DatasetID: "vegetation_point_intercept_gridVeg",
		TableID:   "gridVeg_additional_species",
	}

	assert.Equal(t, "`mpg-data-warehouse.vegetation_point_intercept_gridVeg.gridVeg_additional_species`", table.FullName())
	assert.Equal(t, "mpg-data-warehouse.vegetation_point_intercept_gridVeg.gridVeg_additional_species", table.String())
}

func TestGetEnv(t *testing.T) {
	t.Setenv(EnvProjectID, "test-project")

	assert.Equal(t, "test-project", GetEnv(EnvProjectID, "fallback"))
	assert.Equal(t, "fallback", GetEnv("GRIDVEG_DOES_NOT_EXIST", "fallback"))
}
