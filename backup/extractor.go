package backup

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/mpgranch/gridveg-tools/common"
)

//go:generate mockery --name Extractor --output ./mocks
type Extractor interface {
	// ExtractToGCS exports the table contents to the given gs:// URI pattern.
	ExtractToGCS(ctx context.Context, table common.TableInfo, gcsURI string) error
}

var _ Extractor = (*BigQueryExtractor)(nil)

type BigQueryExtractor struct {
	BigqueryClient *bigquery.Client
}

func NewBigQueryExtractor(ctx context.Context, projectID string) (*BigQueryExtractor, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &BigQueryExtractor{BigqueryClient: bq}, nil
}

func (e *BigQueryExtractor) Close() error {
	return e.BigqueryClient.Close()
}

func (e *BigQueryExtractor) ExtractToGCS(ctx context.Context, table common.TableInfo, gcsURI string) error {
	gcsRef := bigquery.NewGCSReference(gcsURI)
	gcsRef.DestinationFormat = bigquery.CSV

	extractor := e.BigqueryClient.DatasetInProject(table.ProjectID, table.DatasetID).Table(table.TableID).ExtractorTo(gcsRef)

	job, err := extractor.Run(ctx)
	if err != nil {
		return err
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}

	return status.Err()
}
