package evaluation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jscorphr/internal/domain/auth"
)

// zeroUUID stands in for the null evaluator in the natural-key unique index,
// since Postgres unique indexes treat NULLs as distinct.
const zeroUUID = "00000000-0000-0000-0000-000000000000"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.Begin(ctx)
}

func (s *Store) PlanStatus(ctx context.Context, planID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM evaluation_plans WHERE id = $1", planID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPlanNotFound
	}
	return status, err
}

func (s *Store) ItemWeightsTx(ctx context.Context, tx pgx.Tx, planID string) (map[string]float64, error) {
	rows, err := tx.Query(ctx, "SELECT id, weight FROM evaluation_items WHERE plan_id = $1", planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := map[string]float64{}
	for rows.Next() {
		var id string
		var weight float64
		if err := rows.Scan(&id, &weight); err != nil {
			return nil, err
		}
		weights[id] = weight
	}
	return weights, rows.Err()
}

func (s *Store) EnsureResultTx(ctx context.Context, tx pgx.Tx, planID, employeeID string, evaluatorEmployeeID *string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
    INSERT INTO evaluation_results (plan_id, emp_id, evaluator_emp_id, score)
    VALUES ($1,$2,$3,0)
    ON CONFLICT (plan_id, emp_id, COALESCE(evaluator_emp_id, '`+zeroUUID+`'::uuid))
    DO UPDATE SET updated_at = now()
    RETURNING id
  `, planID, employeeID, evaluatorEmployeeID).Scan(&id)
	return id, err
}

func (s *Store) UpsertScoreTx(ctx context.Context, tx pgx.Tx, resultID, itemID string, score float64, comment string) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO evaluation_scores (result_id, item_id, score, comment)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (result_id, item_id)
    DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, updated_at = now()
  `, resultID, itemID, score, comment)
	return err
}

func (s *Store) StoredScoresTx(ctx context.Context, tx pgx.Tx, resultID string) ([]StoredScore, error) {
	rows, err := tx.Query(ctx, "SELECT item_id, score FROM evaluation_scores WHERE result_id = $1", resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []StoredScore
	for rows.Next() {
		var stored StoredScore
		if err := rows.Scan(&stored.ItemID, &stored.Score); err != nil {
			return nil, err
		}
		scores = append(scores, stored)
	}
	return scores, rows.Err()
}

func (s *Store) UpdateResultScoreTx(ctx context.Context, tx pgx.Tx, resultID string, aggregate float64) error {
	_, err := tx.Exec(ctx, `
    UPDATE evaluation_results SET score = $1, updated_at = now() WHERE id = $2
  `, aggregate, resultID)
	return err
}

func (s *Store) ResultID(ctx context.Context, planID, employeeID string, evaluatorEmployeeID *string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id FROM evaluation_results
    WHERE plan_id = $1 AND emp_id = $2
      AND COALESCE(evaluator_emp_id, '`+zeroUUID+`'::uuid) = COALESCE($3, '`+zeroUUID+`'::uuid)
  `, planID, employeeID, evaluatorEmployeeID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (s *Store) ItemsWithScores(ctx context.Context, planID, resultID string) ([]ItemWithScore, error) {
	if resultID == "" {
		// No result row yet; the zero uuid matches nothing, so every
		// item comes back unscored.
		resultID = zeroUUID
	}
	rows, err := s.DB.Query(ctx, `
    SELECT i.id, i.plan_id, i.name, i.weight, COALESCE(i.category, ''),
           sc.score, COALESCE(sc.comment, '')
    FROM evaluation_items i
    LEFT JOIN evaluation_scores sc ON sc.item_id = i.id AND sc.result_id = $2
    WHERE i.plan_id = $1
    ORDER BY i.name
  `, planID, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemWithScore
	for rows.Next() {
		var item ItemWithScore
		if err := rows.Scan(&item.ID, &item.PlanID, &item.Name, &item.Weight, &item.Category,
			&item.Score, &item.Comment); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GradeBands(ctx context.Context, planID string) ([]GradeBand, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT min_score, max_score, grade, is_promotion_candidate
    FROM grade_policies
    WHERE plan_id = $1
    ORDER BY min_score
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bands []GradeBand
	for rows.Next() {
		var band GradeBand
		if err := rows.Scan(&band.MinScore, &band.MaxScore, &band.Grade, &band.IsPromotionCandidate); err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	return bands, rows.Err()
}

func (s *Store) ResultsForPlan(ctx context.Context, planID string) ([]Result, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, emp_id, evaluator_emp_id, score, COALESCE(comment, ''),
           COALESCE(grade, ''), is_promotion_candidate
    FROM evaluation_results
    WHERE plan_id = $1
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func (s *Store) UpdateResultGradeTx(ctx context.Context, tx pgx.Tx, resultID, grade string, isPromotionCandidate bool) error {
	_, err := tx.Exec(ctx, `
    UPDATE evaluation_results
    SET grade = NULLIF($1, ''), is_promotion_candidate = $2, updated_at = now()
    WHERE id = $3
  `, grade, isPromotionCandidate, resultID)
	return err
}

func (s *Store) ListPlans(ctx context.Context) ([]Plan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, year, status, created_at
    FROM evaluation_plans
    ORDER BY year DESC, name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var plan Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Year, &plan.Status, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *Store) ListResults(ctx context.Context, planID string, scope auth.ScopeFilter) ([]Result, error) {
	cond, args := scope.SQLCondition("e.id", "e.dept_id", 2)
	query := fmt.Sprintf(`
    SELECT r.id, r.plan_id, r.emp_id, r.evaluator_emp_id, r.score, COALESCE(r.comment, ''),
           COALESCE(r.grade, ''), r.is_promotion_candidate
    FROM evaluation_results r
    JOIN employees e ON r.emp_id = e.id
    WHERE r.plan_id = $1 AND %s
    ORDER BY e.emp_no
  `, cond)
	args = append([]any{planID}, args...)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows pgx.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.ID, &res.PlanID, &res.EmployeeID, &res.EvaluatorEmployeeID,
			&res.Score, &res.Comment, &res.Grade, &res.IsPromotionCandidate); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
