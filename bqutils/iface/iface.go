package iface

import (
	"context"

	"cloud.google.com/go/bigquery"
)

//go:generate mockery --name RowIterator --output ../mocks
type RowIterator interface {
	Next(dst interface{}) error
}

//go:generate mockery --name QueryHandler --output ../mocks
type QueryHandler interface {
	Read(ctx context.Context, query *bigquery.Query) (RowIterator, error)
}

//go:generate mockery --name DMLHandler --output ../mocks
type DMLHandler interface {
	// Run executes a DML statement and returns the number of affected rows.
	Run(ctx context.Context, query *bigquery.Query) (int64, error)
}
