package backup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mpgranch/gridveg-tools/backup"
	"github.com/mpgranch/gridveg-tools/backup/mocks"
	"github.com/mpgranch/gridveg-tools/common"
	"github.com/mpgranch/gridveg-tools/logger"
)

var testTable = common.TableInfo{
	ProjectID: "mpg-data-warehouse",
	DatasetID: "vegetation_point_intercept_gridVeg",
	TableID:   "gridVeg_additional_species",
}

const (
	testBucket = "mpg-backups"
	testPrefix = "backups/vegetation_point_intercept_gridVeg/gridVeg_additional_species/20250115_120000"
)

func newAgent(t *testing.T, extractor *mocks.Extractor, objectStore *mocks.ObjectStore) *backup.Agent {
	t.Helper()

	agent := backup.NewAgent(logger.FromContext, extractor, objectStore, testBucket)
	agent.SetNow(func() time.Time {
		return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	})

	return agent
}

func TestBackupTable(t *testing.T) {
	ctx := context.Background()
	gcsURI := "gs://" + testBucket + "/" + testPrefix + "/backup_*.csv"

	extractor := &mocks.Extractor{}
	objectStore := &mocks.ObjectStore{}

	extractor.On("ExtractToGCS", ctx, testTable, gcsURI).Return(nil)
	objectStore.On("ListObjects", ctx, testBucket, testPrefix).Return([]backup.ObjectInfo{
		{Name: testPrefix + "/backup_000000000000.csv", Size: 2048},
	}, nil)
	objectStore.On("WriteObject", ctx, testBucket, testPrefix+"/manifest.json", mock.MatchedBy(func(data []byte) bool {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &m))

		return assert.Equal(t, testTable.String(), m["table"]) &&
			assert.Equal(t, "20250115_120000", m["timestamp"])
	})).Return(nil)

	location, err := newAgent(t, extractor, objectStore).BackupTable(ctx, testTable)

	require.NoError(t, err)
	assert.Equal(t, "gs://"+testBucket+"/"+testPrefix, location)
	extractor.AssertExpectations(t)
	objectStore.AssertExpectations(t)
}

func TestBackupTableExtractFailure(t *testing.T) {
	ctx := context.Background()
	errDefault := errors.New("extract job failed")

	extractor := &mocks.Extractor{}
	objectStore := &mocks.ObjectStore{}

	extractor.On("ExtractToGCS", ctx, testTable, mock.Anything).Return(errDefault)

	location, err := newAgent(t, extractor, objectStore).BackupTable(ctx, testTable)

	assert.Empty(t, location)
	assert.ErrorContains(t, err, errDefault.Error())
	objectStore.AssertNotCalled(t, "WriteObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBackupTableEmptyExport(t *testing.T) {
	ctx := context.Background()

	extractor := &mocks.Extractor{}
	objectStore := &mocks.ObjectStore{}

	extractor.On("ExtractToGCS", ctx, testTable, mock.Anything).Return(nil)
	objectStore.On("ListObjects", ctx, testBucket, testPrefix).Return([]backup.ObjectInfo{
		{Name: testPrefix + "/backup_000000000000.csv", Size: 0},
	}, nil)

	location, err := newAgent(t, extractor, objectStore).BackupTable(ctx, testTable)

	assert.Empty(t, location)
	assert.True(t, errors.Is(err, backup.ErrEmptyExport))
	objectStore.AssertNotCalled(t, "WriteObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
