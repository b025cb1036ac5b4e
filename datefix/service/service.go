// Package service orchestrates the date correction workflow:
// backup, identify, preview or apply, validate.
package service

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/qmuntal/stateless"

	"github.com/mpgranch/gridveg-tools/common"
	"github.com/mpgranch/gridveg-tools/datefix/dal"
	"github.com/mpgranch/gridveg-tools/datefix/domain"
	"github.com/mpgranch/gridveg-tools/logger"
)

// Workflow states. Terminal states are StateDryRunDone, StateValidated and
// StateFailed; there are no retries, any stage failure halts the run.
const (
	StateInit       = "INIT"
	StateBackedUp   = "BACKED_UP"
	StateIdentified = "IDENTIFIED"
	StateDryRunDone = "DRY_RUN_DONE"
	StateApplied    = "APPLIED"
	StateValidated  = "VALIDATED"
	StateFailed     = "FAILED"
)

const (
	triggerBackup   = "backup"
	triggerIdentify = "identify"
	triggerPreview  = "preview"
	triggerApply    = "apply"
	triggerValidate = "validate"
	triggerFail     = "fail"
)

//go:generate mockery --name BackupAgent --output ./mocks
type BackupAgent interface {
	// BackupTable snapshots the table to the object store and returns the
	// backup location.
	BackupTable(ctx context.Context, table common.TableInfo) (string, error)
}

// RunParams describes one correction run.
type RunParams struct {
	Target    common.TableInfo
	Threshold civil.Date
	DryRun    bool
}

// RunResult summarizes a finished (or failed) run.
type RunResult struct {
	State          string
	BackupLocation string
	Identified     int
	Matched        int
	Unmatched      int
	Applied        int64
}

type Service struct {
	loggerProvider logger.Provider
	store          dal.SurveyStore
	backupAgent    BackupAgent
}

func NewService(loggerProvider logger.Provider, store dal.SurveyStore, backupAgent BackupAgent) *Service {
	return &Service{
		loggerProvider: loggerProvider,
		store:          store,
		backupAgent:    backupAgent,
	}
}

func newRunMachine() *stateless.StateMachine {
	machine := stateless.NewStateMachine(StateInit)

	machine.Configure(StateInit).
		Permit(triggerBackup, StateBackedUp).
		Permit(triggerFail, StateFailed)

	machine.Configure(StateBackedUp).
		Permit(triggerIdentify, StateIdentified).
		Permit(triggerFail, StateFailed)

	machine.Configure(StateIdentified).
		Permit(triggerPreview, StateDryRunDone).
		Permit(triggerApply, StateApplied).
		Permit(triggerFail, StateFailed)

	machine.Configure(StateApplied).
		Permit(triggerValidate, StateValidated).
		Permit(triggerFail, StateFailed)

	return machine
}

// Run executes the full workflow. The applied update is never reverted on
// validation failure; recovery is a manual restore from the backup location
// in the result.
func (s *Service) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	l := s.loggerProvider(ctx)
	machine := newRunMachine()
	result := &RunResult{State: StateInit}

	fail := func(err error) (*RunResult, error) {
		_ = machine.Fire(triggerFail)
		result.State = StateFailed

		return result, err
	}

	advance := func(trigger string) error {
		if err := machine.Fire(trigger); err != nil {
			return err
		}

		result.State = machine.MustState().(string)

		return nil
	}

	// Backup precedes everything; a run that cannot snapshot must not touch
	// the table.
	location, err := s.backupAgent.BackupTable(ctx, params.Target)
	if err != nil {
		return fail(errors.Wrap(domain.ErrBackupFailed, err.Error()))
	}

	result.BackupLocation = location
	l.Infof("backup completed: %s", location)

	if err := advance(triggerBackup); err != nil {
		return fail(err)
	}

	plan, err := s.identify(ctx, params, result)
	if err != nil {
		return fail(err)
	}

	if err := advance(triggerIdentify); err != nil {
		return fail(err)
	}

	logUnmatched(l, plan.Unmatched)
	logPreview(l, plan, params.Threshold)

	if params.DryRun {
		l.Info("dry run complete, no changes applied")

		if err := advance(triggerPreview); err != nil {
			return fail(err)
		}

		return result, nil
	}

	if err := s.apply(ctx, params, plan, result); err != nil {
		return fail(err)
	}

	if err := advance(triggerApply); err != nil {
		return fail(err)
	}

	if err := s.validate(ctx, params, l); err != nil {
		return fail(err)
	}

	if err := advance(triggerValidate); err != nil {
		return fail(err)
	}

	l.Infof("correction validated: %d rows updated", result.Applied)

	return result, nil
}

func (s *Service) identify(ctx context.Context, params RunParams, result *RunResult) (*domain.CorrectionPlan, error) {
	l := s.loggerProvider(ctx)

	rows, err := s.store.GetCorruptedRows(ctx, params.Threshold)
	if err != nil {
		return nil, errors.Wrap(err, "identifying corrupted rows")
	}

	result.Identified = len(rows)
	l.Infof("identified %d rows with date beyond %s", len(rows), params.Threshold)

	if len(rows) == 0 {
		return &domain.CorrectionPlan{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SurveyID)
	}

	refs, err := s.store.GetReferenceRows(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "resolving reference rows")
	}

	plan, err := domain.BuildPlan(rows, refs, params.Threshold)
	if err != nil {
		return nil, err
	}

	result.Matched = len(plan.Changes)
	result.Unmatched = len(plan.Unmatched)

	return plan, nil
}

func (s *Service) apply(ctx context.Context, params RunParams, plan *domain.CorrectionPlan, result *RunResult) error {
	l := s.loggerProvider(ctx)

	if len(plan.Changes) == 0 {
		l.Info("no matched rows to correct")
		return nil
	}

	affected, err := s.store.UpdateDates(ctx, plan.SurveyIDs(), params.Threshold)
	if err != nil {
		return errors.Wrap(err, "applying date correction")
	}

	result.Applied = affected

	if affected != int64(len(plan.Changes)) {
		return errors.Wrapf(domain.ErrRowCountMismatch, "planned %d, affected %d", len(plan.Changes), affected)
	}

	l.Infof("updated %d rows", affected)

	return nil
}

func (s *Service) validate(ctx context.Context, params RunParams, l logger.ILogger) error {
	var result *multierror.Error

	beyond, err := s.store.CountBeyondThreshold(ctx, params.Threshold)
	if err != nil {
		result = multierror.Append(result, errors.Wrap(err, "counting rows beyond threshold"))
	} else if beyond != 0 {
		result = multierror.Append(result, errors.Errorf("validation: %d rows remain beyond threshold %s", beyond, params.Threshold))
	}

	mismatches, err := s.store.CountYearMismatches(ctx)
	if err != nil {
		result = multierror.Append(result, errors.Wrap(err, "counting year mismatches"))
	} else if mismatches != 0 {
		result = multierror.Append(result, errors.Errorf("validation: %d rows have year inconsistent with date", mismatches))
	}

	if result.ErrorOrNil() != nil {
		l.Error("validation failed; the applied update is not reverted, restore from backup if needed")
	}

	return result.ErrorOrNil()
}
