package domain

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) civil.Date {
	t.Helper()

	d, err := civil.ParseDate(value)
	require.NoError(t, err)

	return d
}

func TestBuildPlanCorrectsDateAndYear(t *testing.T) {
	threshold := mustDate(t, "2024-12-31")

	rows := []Record{
		{SurveyID: "S42", Date: mustDate(t, "2025-05-11"), Year: 2025},
	}
	refs := []ReferenceRecord{
		{SurveyID: "S42", Date: mustDate(t, "2011-05-25")},
	}

	plan, err := BuildPlan(rows, refs, threshold)
	require.NoError(t, err)

	require.Len(t, plan.Changes, 1)
	assert.Empty(t, plan.Unmatched)

	change := plan.Changes[0]
	assert.Equal(t, "S42", change.SurveyID)
	assert.Equal(t, mustDate(t, "2011-05-25"), change.NewDate)
	assert.Equal(t, int64(2011), change.NewYear)
	assert.Equal(t, mustDate(t, "2025-05-11"), change.OldDate)
	assert.Equal(t, int64(2025), change.OldYear)
}

func TestBuildPlanExcludesUnmatchedRows(t *testing.T) {
	threshold := mustDate(t, "2024-12-31")

	rows := []Record{
		{SurveyID: "S1", Date: mustDate(t, "2025-01-02"), Year: 2025},
		{SurveyID: "S2", Date: mustDate(t, "2025-03-04"), Year: 2025},
	}
	refs := []ReferenceRecord{
		{SurveyID: "S1", Date: mustDate(t, "2016-06-01")},
	}

	plan, err := BuildPlan(rows, refs, threshold)
	require.NoError(t, err)

	require.Len(t, plan.Changes, 1)
	assert.Equal(t, "S1", plan.Changes[0].SurveyID)

	require.Len(t, plan.Unmatched, 1)
	assert.Equal(t, "S2", plan.Unmatched[0].SurveyID)
	assert.Equal(t, []string{"S1"}, plan.SurveyIDs())
}

func TestBuildPlanRejectsAmbiguousReference(t *testing.T) {
	threshold := mustDate(t, "2024-12-31")

	rows := []Record{
		{SurveyID: "S1", Date: mustDate(t, "2025-01-02"), Year: 2025},
	}
	refs := []ReferenceRecord{
		{SurveyID: "S1", Date: mustDate(t, "2016-06-01")},
		{SurveyID: "S1", Date: mustDate(t, "2017-06-01")},
	}

	plan, err := BuildPlan(rows, refs, threshold)

	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, ErrAmbiguousReference))
	assert.Contains(t, err.Error(), "S1")
}

func TestBuildPlanRejectsSuspectReference(t *testing.T) {
	threshold := mustDate(t, "2024-12-31")

	rows := []Record{
		{SurveyID: "S1", Date: mustDate(t, "2025-01-02"), Year: 2025},
	}

	// The trusted date also falls beyond the threshold: correcting with it
	// would only move the corruption around, so planning must stop.
	refs := []ReferenceRecord{
		{SurveyID: "S1", Date: mustDate(t, "2025-06-01")},
	}

	plan, err := BuildPlan(rows, refs, threshold)

	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, ErrSuspectReference))
}

func TestBuildPlanEmptyInput(t *testing.T) {
	plan, err := BuildPlan(nil, nil, mustDate(t, "2024-12-31"))

	require.NoError(t, err)
	assert.Empty(t, plan.Changes)
	assert.Empty(t, plan.Unmatched)
	assert.Empty(t, plan.SurveyIDs())
}
