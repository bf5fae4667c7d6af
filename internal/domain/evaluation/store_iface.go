package evaluation

import (
	"context"

	"github.com/jackc/pgx/v5"

	"jscorphr/internal/domain/auth"
)

type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	PlanStatus(ctx context.Context, planID string) (string, error)
	ItemWeightsTx(ctx context.Context, tx pgx.Tx, planID string) (map[string]float64, error)
	// EnsureResultTx returns the result row id for (plan, ratee, evaluator),
	// creating it if absent. A nil evaluator targets the self-assessment row.
	EnsureResultTx(ctx context.Context, tx pgx.Tx, planID, employeeID string, evaluatorEmployeeID *string) (string, error)
	UpsertScoreTx(ctx context.Context, tx pgx.Tx, resultID, itemID string, score float64, comment string) error
	StoredScoresTx(ctx context.Context, tx pgx.Tx, resultID string) ([]StoredScore, error)
	UpdateResultScoreTx(ctx context.Context, tx pgx.Tx, resultID string, aggregate float64) error

	ItemsWithScores(ctx context.Context, planID, resultID string) ([]ItemWithScore, error)
	// ResultID returns the existing result row id for (plan, ratee,
	// evaluator), or "" when none exists yet.
	ResultID(ctx context.Context, planID, employeeID string, evaluatorEmployeeID *string) (string, error)
	GradeBands(ctx context.Context, planID string) ([]GradeBand, error)
	ResultsForPlan(ctx context.Context, planID string) ([]Result, error)
	UpdateResultGradeTx(ctx context.Context, tx pgx.Tx, resultID, grade string, isPromotionCandidate bool) error
	ListPlans(ctx context.Context) ([]Plan, error)
	ListResults(ctx context.Context, planID string, scope auth.ScopeFilter) ([]Result, error)
}
