package evaluation

import (
	"context"
	"errors"

	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/org"
)

type Service struct {
	store  StoreAPI
	scopes *auth.ScopeResolver
}

func NewService(store StoreAPI, scopes *auth.ScopeResolver) *Service {
	return &Service{store: store, scopes: scopes}
}

// SubmitSelfScores records the actor's self-assessment item scores for the
// plan and recomputes the self row's aggregate.
func (s *Service) SubmitSelfScores(ctx context.Context, actor auth.Actor, planID string, inputs []ItemScoreInput) ([]ItemWithScore, error) {
	if err := s.checkPlanOpen(ctx, planID); err != nil {
		return nil, err
	}
	if !actor.Linked() {
		return nil, ErrProfileNotLinked
	}
	return s.submitScores(ctx, planID, actor.EmployeeID, nil, inputs)
}

// SubmitReviewerScores records the actor's scores for another employee. The
// target must fall inside the actor's resolved scope, which for a MANAGER
// restricts submissions to same-department employees.
func (s *Service) SubmitReviewerScores(ctx context.Context, actor auth.Actor, planID, targetEmployeeID string, inputs []ItemScoreInput) ([]ItemWithScore, error) {
	if err := s.checkPlanOpen(ctx, planID); err != nil {
		return nil, err
	}
	if !actor.Linked() {
		return nil, ErrProfileNotLinked
	}
	// An unknown target reads as a lookup failure, not a permission failure.
	if _, err := s.scopes.Directory.EmployeeRef(ctx, targetEmployeeID); err != nil {
		if errors.Is(err, org.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	permitted, err := s.scopes.Permits(ctx, actor, targetEmployeeID)
	if err != nil {
		return nil, err
	}
	if !permitted {
		return nil, ErrForbidden
	}
	evaluator := actor.EmployeeID
	return s.submitScores(ctx, planID, targetEmployeeID, &evaluator, inputs)
}

func (s *Service) checkPlanOpen(ctx context.Context, planID string) error {
	status, err := s.store.PlanStatus(ctx, planID)
	if err != nil {
		return err
	}
	if status != PlanStatusOpen {
		return ErrPlanNotOpen
	}
	return nil
}

// submitScores upserts the submitted item scores and recomputes the result's
// aggregate over ALL stored scores for the row, not just this submission,
// in one transaction. Item ids that don't belong to the plan are skipped.
func (s *Service) submitScores(ctx context.Context, planID, employeeID string, evaluatorEmployeeID *string, inputs []ItemScoreInput) ([]ItemWithScore, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Weights are read inside the transaction so the filter and the
	// recomputation see the same rubric.
	weights, err := s.store.ItemWeightsTx(ctx, tx, planID)
	if err != nil {
		return nil, err
	}

	resultID, err := s.store.EnsureResultTx(ctx, tx, planID, employeeID, evaluatorEmployeeID)
	if err != nil {
		return nil, err
	}

	for _, input := range inputs {
		if _, ok := weights[input.ItemID]; !ok {
			continue
		}
		if err := s.store.UpsertScoreTx(ctx, tx, resultID, input.ItemID, input.Score, input.Comment); err != nil {
			return nil, err
		}
	}

	stored, err := s.store.StoredScoresTx(ctx, tx, resultID)
	if err != nil {
		return nil, err
	}
	aggregate := WeightedAverage(stored, weights)
	if err := s.store.UpdateResultScoreTx(ctx, tx, resultID, aggregate); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.store.ItemsWithScores(ctx, planID, resultID)
}

// AggregatePlan classifies every result row under the plan against the
// plan's grade bands and persists grade and promotion flag.
func (s *Service) AggregatePlan(ctx context.Context, planID string, actor auth.Actor) (AggregateResult, error) {
	if actor.Role != auth.RoleAdmin && actor.Role != auth.RoleHRAdmin {
		return AggregateResult{}, ErrForbidden
	}
	if _, err := s.store.PlanStatus(ctx, planID); err != nil {
		return AggregateResult{}, err
	}

	bands, err := s.store.GradeBands(ctx, planID)
	if err != nil {
		return AggregateResult{}, err
	}
	results, err := s.store.ResultsForPlan(ctx, planID)
	if err != nil {
		return AggregateResult{}, err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return AggregateResult{}, err
	}
	defer tx.Rollback(ctx)

	var out AggregateResult
	for _, result := range results {
		grade, promotion := Classify(result.Score, bands)
		if err := s.store.UpdateResultGradeTx(ctx, tx, result.ID, grade, promotion); err != nil {
			return AggregateResult{}, err
		}
		out.Updated++
	}

	if err := tx.Commit(ctx); err != nil {
		return AggregateResult{}, err
	}
	return out, nil
}

// ListItems returns the plan's items annotated with the actor's own
// self-assessment scores, where submitted.
func (s *Service) ListItems(ctx context.Context, actor auth.Actor, planID string) ([]ItemWithScore, error) {
	if _, err := s.store.PlanStatus(ctx, planID); err != nil {
		return nil, err
	}
	var resultID string
	if actor.Linked() {
		id, err := s.store.ResultID(ctx, planID, actor.EmployeeID, nil)
		if err != nil {
			return nil, err
		}
		resultID = id
	}
	return s.store.ItemsWithScores(ctx, planID, resultID)
}

func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.store.ListPlans(ctx)
}

func (s *Service) ListResults(ctx context.Context, planID string, scope auth.ScopeFilter) ([]Result, error) {
	if _, err := s.store.PlanStatus(ctx, planID); err != nil {
		return nil, err
	}
	return s.store.ListResults(ctx, planID, scope)
}
