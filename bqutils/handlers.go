// Package bqutils provides thin, mockable handlers over the BigQuery client
// so query and DML code can be tested without network access.
package bqutils

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/mpgranch/gridveg-tools/bqutils/iface"
)

type QueryHandler struct{}

func (QueryHandler) Read(ctx context.Context, query *bigquery.Query) (iface.RowIterator, error) {
	return query.Read(ctx)
}

type DMLHandler struct{}

func (DMLHandler) Run(ctx context.Context, query *bigquery.Query) (int64, error) {
	job, err := query.Run(ctx)
	if err != nil {
		return 0, err
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return 0, err
	}

	if err := status.Err(); err != nil {
		return 0, err
	}

	if stats, ok := status.Statistics.Details.(*bigquery.QueryStatistics); ok {
		return stats.NumDMLAffectedRows, nil
	}

	return 0, nil
}
