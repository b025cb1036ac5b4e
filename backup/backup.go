// Package backup snapshots BigQuery tables to Cloud Storage before any
// mutation. A snapshot is a set of CSV export objects under a prefix
// namespaced by dataset, table and run timestamp, finished with a manifest.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/mpgranch/gridveg-tools/common"
	"github.com/mpgranch/gridveg-tools/logger"
)

const manifestName = "manifest.json"

// ErrEmptyExport signals that the extract job finished but left no data
// objects under the backup prefix.
var ErrEmptyExport = errors.New("backup export produced no data objects")

type manifest struct {
	Table     string       `json:"table"`
	Timestamp string       `json:"timestamp"`
	Objects   []ObjectInfo `json:"objects"`
}

type Agent struct {
	loggerProvider logger.Provider
	extractor      Extractor
	objectStore    ObjectStore
	bucket         string

	// now is swappable for tests.
	now func() time.Time
}

func NewAgent(loggerProvider logger.Provider, extractor Extractor, objectStore ObjectStore, bucket string) *Agent {
	return &Agent{
		loggerProvider: loggerProvider,
		extractor:      extractor,
		objectStore:    objectStore,
		bucket:         bucket,
		now:            time.Now,
	}
}

// SetNow overrides the clock used for snapshot timestamps.
func (a *Agent) SetNow(now func() time.Time) {
	a.now = now
}

// BackupTable exports the table to
// gs://<bucket>/backups/<dataset>/<table>/<timestamp>/backup_*.csv, verifies
// that at least one non-empty object was written, and records a manifest.
// Returns the gs:// prefix of the snapshot.
func (a *Agent) BackupTable(ctx context.Context, table common.TableInfo) (string, error) {
	l := a.loggerProvider(ctx)

	timestamp := a.now().UTC().Format(common.BackupTimestampFormat)
	prefix := fmt.Sprintf("backups/%s/%s/%s", table.DatasetID, table.TableID, timestamp)
	gcsURI := fmt.Sprintf("gs://%s/%s/backup_*.csv", a.bucket, prefix)

	l.Infof("exporting %s to %s", table, gcsURI)

	if err := a.extractor.ExtractToGCS(ctx, table, gcsURI); err != nil {
		return "", errors.Wrapf(err, "extracting %s", table)
	}

	objects, err := a.objectStore.ListObjects(ctx, a.bucket, prefix)
	if err != nil {
		return "", errors.Wrap(err, "verifying backup objects")
	}

	if !hasData(objects) {
		return "", errors.Wrapf(ErrEmptyExport, "prefix %s", prefix)
	}

	data, err := json.Marshal(manifest{
		Table:     table.String(),
		Timestamp: timestamp,
		Objects:   objects,
	})
	if err != nil {
		return "", err
	}

	if err := a.objectStore.WriteObject(ctx, a.bucket, prefix+"/"+manifestName, data); err != nil {
		return "", errors.Wrap(err, "writing backup manifest")
	}

	location := fmt.Sprintf("gs://%s/%s", a.bucket, prefix)
	l.Infof("backup verified: %d objects at %s", len(objects), location)

	return location, nil
}

func hasData(objects []ObjectInfo) bool {
	for _, o := range objects {
		if o.Size > 0 {
			return true
		}
	}

	return false
}
