package domain

import (
	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// BuildPlan matches identified rows against their reference records and
// returns the correction plan. Rows without a reference go to Unmatched and
// are excluded from correction. A survey_ID with more than one reference row
// or a reference date beyond the threshold aborts planning.
func BuildPlan(rows []Record, refs []ReferenceRecord, threshold civil.Date) (*CorrectionPlan, error) {
	byID := make(map[string]ReferenceRecord, len(refs))

	for _, ref := range refs {
		if _, ok := byID[ref.SurveyID]; ok {
			return nil, errors.Wrapf(ErrAmbiguousReference, "survey_ID %s", ref.SurveyID)
		}

		byID[ref.SurveyID] = ref
	}

	plan := &CorrectionPlan{}

	for _, row := range rows {
		ref, ok := byID[row.SurveyID]
		if !ok {
			plan.Unmatched = append(plan.Unmatched, row)
			continue
		}

		if ref.Date.After(threshold) {
			return nil, errors.Wrapf(ErrSuspectReference, "survey_ID %s has reference date %s", ref.SurveyID, ref.Date)
		}

		plan.Changes = append(plan.Changes, Change{
			SurveyID: row.SurveyID,
			OldDate:  row.Date,
			NewDate:  ref.Date,
			OldYear:  row.Year,
			NewYear:  int64(ref.Date.Year),
		})
	}

	return plan, nil
}
