package dal

import (
	"context"
	"testing"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/mpgranch/gridveg-tools/bqutils/iface"
	"github.com/mpgranch/gridveg-tools/bqutils/mocks"
	"github.com/mpgranch/gridveg-tools/common"
	"github.com/mpgranch/gridveg-tools/datefix/domain"
)

var (
	testTarget = common.TableInfo{
		ProjectID: "mpg-data-warehouse",
		DatasetID: "vegetation_point_intercept_gridVeg",
		TableID:   "gridVeg_additional_species",
	}
	testMetadata = common.TableInfo{
		ProjectID: "mpg-data-warehouse",
		DatasetID: "vegetation_point_intercept_gridVeg",
		TableID:   "gridVeg_survey_metadata",
	}
)

func newTestStore(qh iface.QueryHandler, dh iface.DMLHandler) *BigQuerySurveyStore {
	return &BigQuerySurveyStore{
		BigqueryClient: &bigquery.Client{},
		Target:         testTarget,
		Metadata:       testMetadata,
		QueryHandler:   qh,
		DMLHandler:     dh,
	}
}

func TestGetCorruptedRows(t *testing.T) {
	type fields struct {
		queryHandler mocks.QueryHandler
	}

	ctx := context.Background()
	threshold := civil.Date{Year: 2024, Month: 12, Day: 31}
	errDefault := errors.New("something went wrong")

	tests := []struct {
		name    string
		on      func(*fields)
		want    []domain.Record
		wantErr error
	}{
		{
			name: "happy path",
			on: func(f *fields) {
				f.queryHandler.On("Read",
					ctx,
					mock.MatchedBy(func(query *bigquery.Query) bool {
						expected := []bigquery.QueryParameter{
							{Name: "threshold", Value: threshold},
						}

						return assert.Equalf(t, expected, query.Parameters, "")
					})).
					Return(func() iface.RowIterator {
						rowIterator := &mocks.RowIterator{}
						rowIterator.On("Next", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
							arg := args.Get(0).(*domain.Record)
							arg.SurveyID = "S42"
							arg.Date = civil.Date{Year: 2025, Month: 5, Day: 11}
							arg.Year = 2025
						}).Once()
						rowIterator.On("Next", mock.Anything).Return(iterator.Done).Once()
						return rowIterator
					}(), nil)
			},
			want: []domain.Record{
				{SurveyID: "S42", Date: civil.Date{Year: 2025, Month: 5, Day: 11}, Year: 2025},
			},
		},
		{
			name: "failed to process query",
			on: func(f *fields) {
				f.queryHandler.On("Read", ctx, mock.Anything).Return(nil, errDefault)
			},
			wantErr: errDefault,
		},
		{
			name: "failed during iterator",
			on: func(f *fields) {
				f.queryHandler.On("Read", ctx, mock.Anything).
					Return(func() iface.RowIterator {
						rowIterator := &mocks.RowIterator{}
						rowIterator.On("Next", mock.Anything).Return(errDefault).Once()
						return rowIterator
					}(), nil)
			},
			wantErr: errDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fields{}
			if tt.on != nil {
				tt.on(&fields)
			}

			s := newTestStore(&fields.queryHandler, nil)

			rows, err := s.GetCorruptedRows(ctx, threshold)

			if tt.wantErr != nil {
				assert.ErrorContains(t, err, tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestGetReferenceRows(t *testing.T) {
	ctx := context.Background()
	surveyIDs := []string{"S42", "S77"}

	queryHandler := &mocks.QueryHandler{}
	queryHandler.On("Read",
		ctx,
		mock.MatchedBy(func(query *bigquery.Query) bool {
			expected := []bigquery.QueryParameter{
				{Name: "surveyIDs", Value: surveyIDs},
			}

			return assert.Equalf(t, expected, query.Parameters, "")
		})).
		Return(func() iface.RowIterator {
			rowIterator := &mocks.RowIterator{}
			rowIterator.On("Next", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
				arg := args.Get(0).(*domain.ReferenceRecord)
				arg.SurveyID = "S42"
				arg.Date = civil.Date{Year: 2011, Month: 5, Day: 25}
			}).Once()
			rowIterator.On("Next", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
				arg := args.Get(0).(*domain.ReferenceRecord)
				arg.SurveyID = "S77"
				arg.Date = civil.Date{Year: 2013, Month: 8, Day: 14}
			}).Once()
			rowIterator.On("Next", mock.Anything).Return(iterator.Done).Once()
			return rowIterator
		}(), nil)

	s := newTestStore(queryHandler, nil)

	refs, err := s.GetReferenceRows(ctx, surveyIDs)

	require.NoError(t, err)
	assert.Equal(t, []domain.ReferenceRecord{
		{SurveyID: "S42", Date: civil.Date{Year: 2011, Month: 5, Day: 25}},
		{SurveyID: "S77", Date: civil.Date{Year: 2013, Month: 8, Day: 14}},
	}, refs)
}

func TestUpdateDates(t *testing.T) {
	ctx := context.Background()
	threshold := civil.Date{Year: 2024, Month: 12, Day: 31}
	surveyIDs := []string{"S42"}

	dmlHandler := &mocks.DMLHandler{}
	dmlHandler.On("Run",
		ctx,
		mock.MatchedBy(func(query *bigquery.Query) bool {
			expected := []bigquery.QueryParameter{
				{Name: "surveyIDs", Value: surveyIDs},
				{Name: "threshold", Value: threshold},
			}

			return assert.Equalf(t, expected, query.Parameters, "")
		})).
		Return(int64(1), nil)

	s := newTestStore(nil, dmlHandler)

	affected, err := s.UpdateDates(ctx, surveyIDs, threshold)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	dmlHandler.AssertExpectations(t)
}

func TestCountQueries(t *testing.T) {
	ctx := context.Background()
	threshold := civil.Date{Year: 2024, Month: 12, Day: 31}

	newCountIterator := func(count int64) iface.RowIterator {
		rowIterator := &mocks.RowIterator{}
		rowIterator.On("Next", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			arg := args.Get(0).(*countRow)
			arg.Count = count
		}).Once()
		return rowIterator
	}

	t.Run("count beyond threshold", func(t *testing.T) {
		queryHandler := &mocks.QueryHandler{}
		queryHandler.On("Read", ctx, mock.Anything).Return(newCountIterator(7), nil)

		s := newTestStore(queryHandler, nil)

		count, err := s.CountBeyondThreshold(ctx, threshold)

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("count year mismatches", func(t *testing.T) {
		queryHandler := &mocks.QueryHandler{}
		queryHandler.On("Read", ctx, mock.Anything).Return(newCountIterator(0), nil)

		s := newTestStore(queryHandler, nil)

		count, err := s.CountYearMismatches(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
