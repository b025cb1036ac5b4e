// Package report compares the target table's survey dates against the
// metadata table and summarizes the discrepancies without touching any data.
package report

import (
	"context"
	"sort"

	"github.com/mpgranch/gridveg-tools/logger"
)

// Summary aggregates the comparison rows by match status, with a breakdown
// of year offsets for the mismatched surveys.
type Summary struct {
	Total           int
	StatusCounts    map[string]int
	YearDifferences map[int]int
	Mismatches      []Row
	MissingSurveys  []string
}

type Service struct {
	loggerProvider logger.Provider
	store          Store
}

func NewService(loggerProvider logger.Provider, store Store) *Service {
	return &Service{
		loggerProvider: loggerProvider,
		store:          store,
	}
}

func (s *Service) Run(ctx context.Context) (*Summary, error) {
	l := s.loggerProvider(ctx)

	rows, err := s.store.GetComparisonRows(ctx)
	if err != nil {
		return nil, err
	}

	summary := Summarize(rows)

	l.Infof("compared %d survey_ID/date combinations", summary.Total)

	for _, status := range []string{StatusMatch, StatusMismatch, StatusMissing} {
		l.Infof("%s: %d", status, summary.StatusCounts[status])
	}

	for _, diff := range sortedKeys(summary.YearDifferences) {
		l.Infof("year offset %+d: %d surveys", diff, summary.YearDifferences[diff])
	}

	if len(summary.MissingSurveys) > 0 {
		l.Warningf("%d surveys have no metadata row: %v", len(summary.MissingSurveys), summary.MissingSurveys)
	}

	return summary, nil
}

// Summarize folds comparison rows into per-status counts and, for
// mismatches, a histogram of metadata-minus-target year offsets.
func Summarize(rows []Row) *Summary {
	summary := &Summary{
		Total:           len(rows),
		StatusCounts:    make(map[string]int),
		YearDifferences: make(map[int]int),
	}

	for _, row := range rows {
		summary.StatusCounts[row.Status]++

		switch row.Status {
		case StatusMismatch:
			summary.Mismatches = append(summary.Mismatches, row)

			if row.MetadataDate.Valid {
				diff := row.MetadataDate.Date.Year - row.TargetDate.Year
				summary.YearDifferences[diff]++
			}
		case StatusMissing:
			summary.MissingSurveys = append(summary.MissingSurveys, row.SurveyID)
		}
	}

	return summary
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Ints(keys)

	return keys
}
