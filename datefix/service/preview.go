package service

import (
	"cloud.google.com/go/civil"

	"github.com/mpgranch/gridveg-tools/datefix/domain"
	"github.com/mpgranch/gridveg-tools/logger"
)

// previewSampleSize caps the number of before/after lines logged per run.
const previewSampleSize = 10

// logPreview reports what a correction run would change, without mutating
// anything. Used for both dry runs and the pre-apply summary.
func logPreview(l logger.ILogger, plan *domain.CorrectionPlan, threshold civil.Date) {
	l.Infof("threshold date: %s", threshold)
	l.Infof("rows beyond threshold: %d", len(plan.Changes)+len(plan.Unmatched))
	l.Infof("rows with a trusted reference date: %d", len(plan.Changes))
	l.Infof("rows without a reference (excluded): %d", len(plan.Unmatched))

	if len(plan.Changes) > 0 {
		oldMin, oldMax := dateRange(plan.Changes, func(c domain.Change) civil.Date { return c.OldDate })
		newMin, newMax := dateRange(plan.Changes, func(c domain.Change) civil.Date { return c.NewDate })
		l.Infof("date range before correction: %s to %s", oldMin, oldMax)
		l.Infof("date range after correction: %s to %s", newMin, newMax)
	}

	sample := plan.Changes
	if len(sample) > previewSampleSize {
		sample = sample[:previewSampleSize]
	}

	for _, c := range sample {
		l.Infof("  %s: %s (year %d) -> %s (year %d)", c.SurveyID, c.OldDate, c.OldYear, c.NewDate, c.NewYear)
	}

	if len(plan.Changes) > len(sample) {
		l.Infof("  ... and %d more", len(plan.Changes)-len(sample))
	}
}

// logUnmatched reports the rows excluded from correction because no trusted
// date exists for their survey_ID.
func logUnmatched(l logger.ILogger, unmatched []domain.Record) {
	if len(unmatched) == 0 {
		return
	}

	l.Warningf("found %d rows with no matching reference record; they will not be corrected", len(unmatched))

	sample := unmatched
	if len(sample) > previewSampleSize {
		sample = sample[:previewSampleSize]
	}

	for _, r := range sample {
		l.Warningf("  unmatched survey_ID %s (date %s)", r.SurveyID, r.Date)
	}
}

func dateRange(changes []domain.Change, date func(domain.Change) civil.Date) (civil.Date, civil.Date) {
	min, max := date(changes[0]), date(changes[0])

	for _, c := range changes[1:] {
		d := date(c)
		if d.Before(min) {
			min = d
		}

		if d.After(max) {
			max = d
		}
	}

	return min, max
}
