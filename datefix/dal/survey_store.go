package dal

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/mpgranch/gridveg-tools/datefix/domain"
)

//go:generate mockery --name SurveyStore --output ./mocks
type SurveyStore interface {
	// GetCorruptedRows returns target rows whose date exceeds the threshold.
	GetCorruptedRows(ctx context.Context, threshold civil.Date) ([]domain.Record, error)

	// GetReferenceRows returns metadata rows for the given survey ids,
	// including duplicates when a survey_ID matches more than one row.
	GetReferenceRows(ctx context.Context, surveyIDs []string) ([]domain.ReferenceRecord, error)

	// UpdateDates rewrites date and year from the metadata table for exactly
	// the given survey ids, re-checking the threshold predicate, and returns
	// the number of affected rows.
	UpdateDates(ctx context.Context, surveyIDs []string, threshold civil.Date) (int64, error)

	// CountBeyondThreshold counts target rows still beyond the threshold.
	CountBeyondThreshold(ctx context.Context, threshold civil.Date) (int64, error)

	// CountYearMismatches counts target rows whose year column disagrees with
	// the year component of the date column.
	CountYearMismatches(ctx context.Context) (int64, error)
}
