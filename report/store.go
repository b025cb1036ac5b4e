package report

import (
	"context"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/mpgranch/gridveg-tools/bqutils"
	"github.com/mpgranch/gridveg-tools/bqutils/iface"
	"github.com/mpgranch/gridveg-tools/common"
)

// Row statuses produced by the comparison query.
const (
	StatusMatch    = "Match"
	StatusMismatch = "Date Mismatch"
	StatusMissing  = "Missing in Metadata"
)

const comparisonQuery = `WITH target_dates AS (
		SELECT
			survey_ID,
			date AS target_date,
			COUNT(*) AS target_record_count
		FROM @target
		GROUP BY survey_ID, date
	),
	metadata_dates AS (
		SELECT
			survey_ID,
			date AS metadata_date,
			COUNT(*) AS metadata_record_count
		FROM @metadata
		GROUP BY survey_ID, date
	)
	SELECT
		t.survey_ID,
		t.target_date,
		m.metadata_date,
		t.target_record_count,
		m.metadata_record_count,
		CASE
			WHEN m.survey_ID IS NULL THEN 'Missing in Metadata'
			WHEN t.target_date != m.metadata_date THEN 'Date Mismatch'
			ELSE 'Match'
		END AS status
	FROM target_dates t
	LEFT JOIN metadata_dates m
	ON t.survey_ID = m.survey_ID
	ORDER BY t.target_date`

// Row is one survey_ID/date combination from the target table compared
// against the metadata table. MetadataDate is null when the survey has no
// metadata row.
type Row struct {
	SurveyID      string             `bigquery:"survey_ID"`
	TargetDate    civil.Date         `bigquery:"target_date"`
	MetadataDate  bigquery.NullDate  `bigquery:"metadata_date"`
	TargetCount   int64              `bigquery:"target_record_count"`
	MetadataCount bigquery.NullInt64 `bigquery:"metadata_record_count"`
	Status        string             `bigquery:"status"`
}

//go:generate mockery --name Store --output ./mocks
type Store interface {
	GetComparisonRows(ctx context.Context) ([]Row, error)
}

var _ Store = (*BigQueryReportStore)(nil)

type BigQueryReportStore struct {
	BigqueryClient *bigquery.Client
	Target         common.TableInfo
	Metadata       common.TableInfo
	QueryHandler   iface.QueryHandler
}

func NewBigQueryReportStore(ctx context.Context, target, metadata common.TableInfo) (*BigQueryReportStore, error) {
	bq, err := bigquery.NewClient(ctx, target.ProjectID)
	if err != nil {
		return nil, err
	}

	return &BigQueryReportStore{
		BigqueryClient: bq,
		Target:         target,
		Metadata:       metadata,
		QueryHandler:   bqutils.QueryHandler{},
	}, nil
}

func (s *BigQueryReportStore) Close() error {
	return s.BigqueryClient.Close()
}

func (s *BigQueryReportStore) GetComparisonRows(ctx context.Context) ([]Row, error) {
	withTarget := strings.Replace(comparisonQuery, "@target", s.Target.FullName(), 1)
	finalQuery := strings.Replace(withTarget, "@metadata", s.Metadata.FullName(), 1)

	query := s.BigqueryClient.Query(finalQuery)
	query.Labels = map[string]string{
		"feature": "gridveg-datefix",
		"module":  "report-comparison",
	}

	iter, err := s.QueryHandler.Read(ctx, query)
	if err != nil {
		return nil, err
	}

	var rows []Row

	for {
		var row Row

		err := iter.Next(&row)
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}
