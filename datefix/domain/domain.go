// Package datefix corrects survey rows whose date column was damaged by a bad
// transformation: rows are flagged by a threshold date, matched to the trusted
// survey metadata table on survey_ID, and rewritten with the metadata date and
// its derived year.
package domain

import (
	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// Record is a row of the target table keyed by survey_ID. The year column is
// redundant and must equal the year component of the date.
type Record struct {
	SurveyID string     `bigquery:"survey_ID"`
	Date     civil.Date `bigquery:"date"`
	Year     int64      `bigquery:"year"`
}

// ReferenceRecord is a row of the trusted survey metadata table.
type ReferenceRecord struct {
	SurveyID string     `bigquery:"survey_ID"`
	Date     civil.Date `bigquery:"date"`
}

// Change is one planned correction for a single survey.
type Change struct {
	SurveyID string
	OldDate  civil.Date
	NewDate  civil.Date
	OldYear  int64
	NewYear  int64
}

// CorrectionPlan is the output of the pure planning step: the changes to
// apply and the rows that must not be touched because no trusted date exists.
type CorrectionPlan struct {
	Changes   []Change
	Unmatched []Record
}

// SurveyIDs returns the survey ids of the planned changes, in plan order.
func (p *CorrectionPlan) SurveyIDs() []string {
	ids := make([]string, 0, len(p.Changes))
	for _, c := range p.Changes {
		ids = append(ids, c.SurveyID)
	}

	return ids
}

var (
	// ErrAmbiguousReference signals that a survey_ID has more than one row in
	// the metadata table. Resolved manually, never silently.
	ErrAmbiguousReference = errors.New("survey has multiple reference rows")

	// ErrSuspectReference signals that the trusted date itself falls beyond
	// the threshold, so correcting with it would produce another
	// corrupted-looking value.
	ErrSuspectReference = errors.New("reference date exceeds threshold")

	// ErrRowCountMismatch signals that the update touched a different number
	// of rows than the plan expected.
	ErrRowCountMismatch = errors.New("update affected an unexpected number of rows")

	// ErrBackupFailed blocks any mutation when the pre-update snapshot could
	// not be taken.
	ErrBackupFailed = errors.New("table backup failed")
)
