package payroll

import (
	"context"
	"time"

	"jscorphr/internal/domain/auth"
	cryptoutil "jscorphr/internal/platform/crypto"
)

type Service struct {
	store  StoreAPI
	crypto *cryptoutil.Service
}

func NewService(store StoreAPI, crypto *cryptoutil.Service) *Service {
	return &Service{store: store, crypto: crypto}
}

// Calculate computes every eligible employee's pay for the run and upserts
// one PayResult per employee. The whole run, including the CALCULATED status
// stamp, commits in a single transaction; the run row is locked up front so
// concurrent calls converge instead of racing. Calling it again is safe: the
// second pass refreshes the same rows and reports only updates.
func (s *Service) Calculate(ctx context.Context, runID string, actor auth.Actor) (CalculateResult, error) {
	if actor.Role != auth.RoleAdmin && actor.Role != auth.RoleHRAdmin {
		return CalculateResult{}, ErrForbidden
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return CalculateResult{}, err
	}
	defer tx.Rollback(ctx)

	run, err := s.store.RunForUpdateTx(ctx, tx, runID)
	if err != nil {
		return CalculateResult{}, err
	}

	employees, err := s.store.ActivePayGroupEmployeesTx(ctx, tx, run.PayGroupID)
	if err != nil {
		return CalculateResult{}, err
	}

	existing, err := s.store.ResultEmployeesTx(ctx, tx, runID)
	if err != nil {
		return CalculateResult{}, err
	}

	var result CalculateResult
	for _, employeeID := range employees {
		hours, err := s.store.WorkedHoursTx(ctx, tx, employeeID, run.YearMonth)
		if err != nil {
			return CalculateResult{}, err
		}
		gross, deduction, net := ComputePay(hours, HourlyRate, DeductionRate)
		if err := s.store.UpsertResultTx(ctx, tx, runID, employeeID, gross, deduction, net); err != nil {
			return CalculateResult{}, err
		}
		if existing[employeeID] {
			result.Updated++
		} else {
			result.Created++
		}
	}

	if err := s.store.MarkCalculatedTx(ctx, tx, runID, time.Now().UTC()); err != nil {
		return CalculateResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CalculateResult{}, err
	}
	return result, nil
}

func (s *Service) GetRun(ctx context.Context, runID string) (PayRun, error) {
	return s.store.GetRun(ctx, runID)
}

func (s *Service) ListRuns(ctx context.Context) ([]PayRun, error) {
	return s.store.ListRuns(ctx)
}

func (s *Service) ListResults(ctx context.Context, runID string, scope auth.ScopeFilter) ([]PayResult, error) {
	if _, err := s.store.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.store.ListResults(ctx, runID, scope)
}
