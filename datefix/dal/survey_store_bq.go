package dal

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/mpgranch/gridveg-tools/bqutils"
	"github.com/mpgranch/gridveg-tools/bqutils/iface"
	"github.com/mpgranch/gridveg-tools/common"
	"github.com/mpgranch/gridveg-tools/datefix/domain"
)

const (
	corruptedRowsQuery = `SELECT survey_ID, date, year
		FROM @target
		WHERE date > @threshold
		ORDER BY survey_ID, date`

	referenceRowsQuery = `SELECT survey_ID, date
		FROM @metadata
		WHERE survey_ID IN UNNEST(@surveyIDs)
		ORDER BY survey_ID`

	updateDatesQuery = `UPDATE @target t
		SET t.date = m.date, t.year = EXTRACT(YEAR FROM m.date)
		FROM @metadata m
		WHERE t.survey_ID = m.survey_ID
		AND t.survey_ID IN UNNEST(@surveyIDs)
		AND t.date > @threshold`

	beyondThresholdQuery = `SELECT COUNT(*) AS count
		FROM @target
		WHERE date > @threshold`

	yearMismatchQuery = `SELECT COUNT(*) AS count
		FROM @target
		WHERE year != EXTRACT(YEAR FROM date)`
)

type countRow struct {
	Count int64 `bigquery:"count"`
}

var _ SurveyStore = (*BigQuerySurveyStore)(nil)

type BigQuerySurveyStore struct {
	BigqueryClient *bigquery.Client
	Target         common.TableInfo
	Metadata       common.TableInfo
	QueryHandler   iface.QueryHandler
	DMLHandler     iface.DMLHandler
}

func NewBigQuerySurveyStore(ctx context.Context, target, metadata common.TableInfo) (*BigQuerySurveyStore, error) {
	bq, err := bigquery.NewClient(ctx, target.ProjectID)
	if err != nil {
		return nil, err
	}

	return &BigQuerySurveyStore{
		BigqueryClient: bq,
		Target:         target,
		Metadata:       metadata,
		QueryHandler:   bqutils.QueryHandler{},
		DMLHandler:     bqutils.DMLHandler{},
	}, nil
}

func (s *BigQuerySurveyStore) Close() error {
	return s.BigqueryClient.Close()
}

func (s *BigQuerySurveyStore) GetCorruptedRows(ctx context.Context, threshold civil.Date) ([]domain.Record, error) {
	query := s.buildQuery(corruptedRowsQuery, "get-corrupted-rows")
	query.Parameters = []bigquery.QueryParameter{
		{Name: "threshold", Value: threshold},
	}

	iter, err := s.QueryHandler.Read(ctx, query)
	if err != nil {
		return nil, err
	}

	var rows []domain.Record

	for {
		var row domain.Record

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

func (s *BigQuerySurveyStore) GetReferenceRows(ctx context.Context, surveyIDs []string) ([]domain.ReferenceRecord, error) {
	query := s.buildQuery(referenceRowsQuery, "get-reference-rows")
	query.Parameters = []bigquery.QueryParameter{
		{Name: "surveyIDs", Value: surveyIDs},
	}

	iter, err := s.QueryHandler.Read(ctx, query)
	if err != nil {
		return nil, err
	}

	var refs []domain.ReferenceRecord

	for {
		var ref domain.ReferenceRecord

		err := iter.Next(&ref)
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, err
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

func (s *BigQuerySurveyStore) UpdateDates(ctx context.Context, surveyIDs []string, threshold civil.Date) (int64, error) {
	query := s.buildQuery(updateDatesQuery, "update-dates")
	query.Parameters = []bigquery.QueryParameter{
		{Name: "surveyIDs", Value: surveyIDs},
		{Name: "threshold", Value: threshold},
	}

	return s.DMLHandler.Run(ctx, query)
}

func (s *BigQuerySurveyStore) CountBeyondThreshold(ctx context.Context, threshold civil.Date) (int64, error) {
	query := s.buildQuery(beyondThresholdQuery, "count-beyond-threshold")
	query.Parameters = []bigquery.QueryParameter{
		{Name: "threshold", Value: threshold},
	}

	return s.readCount(ctx, query)
}

func (s *BigQuerySurveyStore) CountYearMismatches(ctx context.Context) (int64, error) {
	return s.readCount(ctx, s.buildQuery(yearMismatchQuery, "count-year-mismatches"))
}

func (s *BigQuerySurveyStore) readCount(ctx context.Context, query *bigquery.Query) (int64, error) {
	iter, err := s.QueryHandler.Read(ctx, query)
	if err != nil {
		return 0, err
	}

	var row countRow

	err = iter.Next(&row)
	if err != nil && err != iterator.Done {
		return 0, fmt.Errorf("error iterating through results: %v", err)
	}

	return row.Count, nil
}

func (s *BigQuerySurveyStore) buildQuery(queryString, module string) *bigquery.Query {
	withTarget := strings.Replace(queryString, "@target", s.Target.FullName(), 1)
	finalQuery := strings.Replace(withTarget, "@metadata", s.Metadata.FullName(), 1)

	query := s.BigqueryClient.Query(finalQuery)
	query.Labels = map[string]string{
		"feature": "gridveg-datefix",
		"module":  module,
	}

	return query
}
