package evaluation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"

	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/org"
)

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeDirectory map[string]auth.EmployeeRef

func (d fakeDirectory) EmployeeRef(_ context.Context, employeeID string) (auth.EmployeeRef, error) {
	ref, ok := d[employeeID]
	if !ok {
		return auth.EmployeeRef{}, org.ErrEmployeeNotFound
	}
	return ref, nil
}

type fakeScore struct {
	score   float64
	comment string
}

type fakeStore struct {
	planStatus string
	weights    map[string]float64
	bands      []GradeBand

	results map[string]Result               // result id -> row
	scores  map[string]map[string]fakeScore // result id -> item id -> score
	calls   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		planStatus: PlanStatusOpen,
		weights:    map[string]float64{"i1": 40, "i2": 30, "i3": 30},
		results:    map[string]Result{},
		scores:     map[string]map[string]fakeScore{},
	}
}

func (f *fakeStore) BeginTx(context.Context) (pgx.Tx, error) {
	f.calls = append(f.calls, "begin")
	return fakeTx{}, nil
}

func (f *fakeStore) PlanStatus(_ context.Context, planID string) (string, error) {
	if planID != "plan1" {
		return "", ErrPlanNotFound
	}
	return f.planStatus, nil
}

func (f *fakeStore) ItemWeightsTx(context.Context, pgx.Tx, string) (map[string]float64, error) {
	f.calls = append(f.calls, "weights")
	return f.weights, nil
}

func resultKey(employeeID string, evaluatorEmployeeID *string) string {
	evaluator := "self"
	if evaluatorEmployeeID != nil {
		evaluator = *evaluatorEmployeeID
	}
	return fmt.Sprintf("%s|%s", employeeID, evaluator)
}

func (f *fakeStore) EnsureResultTx(_ context.Context, _ pgx.Tx, planID, employeeID string, evaluatorEmployeeID *string) (string, error) {
	id := resultKey(employeeID, evaluatorEmployeeID)
	if _, ok := f.results[id]; !ok {
		f.results[id] = Result{ID: id, PlanID: planID, EmployeeID: employeeID, EvaluatorEmployeeID: evaluatorEmployeeID}
		f.scores[id] = map[string]fakeScore{}
	}
	return id, nil
}

func (f *fakeStore) UpsertScoreTx(_ context.Context, _ pgx.Tx, resultID, itemID string, score float64, comment string) error {
	f.scores[resultID][itemID] = fakeScore{score: score, comment: comment}
	return nil
}

func (f *fakeStore) StoredScoresTx(_ context.Context, _ pgx.Tx, resultID string) ([]StoredScore, error) {
	var stored []StoredScore
	for itemID, sc := range f.scores[resultID] {
		stored = append(stored, StoredScore{ItemID: itemID, Score: sc.score})
	}
	return stored, nil
}

func (f *fakeStore) UpdateResultScoreTx(_ context.Context, _ pgx.Tx, resultID string, aggregate float64) error {
	res := f.results[resultID]
	res.Score = aggregate
	f.results[resultID] = res
	return nil
}

func (f *fakeStore) ResultID(_ context.Context, _, employeeID string, evaluatorEmployeeID *string) (string, error) {
	id := resultKey(employeeID, evaluatorEmployeeID)
	if _, ok := f.results[id]; !ok {
		return "", nil
	}
	return id, nil
}

func (f *fakeStore) ItemsWithScores(_ context.Context, planID, resultID string) ([]ItemWithScore, error) {
	var items []ItemWithScore
	for itemID, weight := range f.weights {
		item := ItemWithScore{Item: Item{ID: itemID, PlanID: planID, Weight: weight}}
		if sc, ok := f.scores[resultID][itemID]; ok {
			score := sc.score
			item.Score = &score
			item.Comment = sc.comment
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeStore) GradeBands(context.Context, string) ([]GradeBand, error) { return f.bands, nil }

func (f *fakeStore) ResultsForPlan(context.Context, string) ([]Result, error) {
	var results []Result
	for _, res := range f.results {
		results = append(results, res)
	}
	return results, nil
}

func (f *fakeStore) UpdateResultGradeTx(_ context.Context, _ pgx.Tx, resultID, grade string, isPromotionCandidate bool) error {
	res := f.results[resultID]
	res.Grade = grade
	res.IsPromotionCandidate = isPromotionCandidate
	f.results[resultID] = res
	return nil
}

func (f *fakeStore) ListPlans(context.Context) ([]Plan, error) { return nil, nil }

func (f *fakeStore) ListResults(context.Context, string, auth.ScopeFilter) ([]Result, error) {
	return nil, nil
}

func testResolver() *auth.ScopeResolver {
	return &auth.ScopeResolver{Directory: fakeDirectory{
		"e1": {ID: "e1", DepartmentID: "d1"},
		"e2": {ID: "e2", DepartmentID: "d1"},
		"e3": {ID: "e3", DepartmentID: "d2"},
	}}
}

func TestSubmitSelfScoresComputesAggregate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testResolver())
	actor := auth.Actor{UserID: "u1", Role: auth.RoleEmployee, EmployeeID: "e1"}

	items, err := svc.SubmitSelfScores(context.Background(), actor, "plan1", []ItemScoreInput{
		{ItemID: "i1", Score: 80},
		{ItemID: "i2", Score: 90},
		{ItemID: "i3", Score: 70},
	})
	if err != nil {
		t.Fatalf("SubmitSelfScores: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	res := store.results[resultKey("e1", nil)]
	if res.Score != 80 {
		t.Fatalf("aggregate = %v, want 80", res.Score)
	}
	if res.EvaluatorEmployeeID != nil {
		t.Fatalf("self row must carry a nil evaluator")
	}
}

func TestSubmitScoresPartialResubmissionRecomputesOverAllItems(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testResolver())
	actor := auth.Actor{UserID: "u1", Role: auth.RoleEmployee, EmployeeID: "e1"}
	ctx := context.Background()

	if _, err := svc.SubmitSelfScores(ctx, actor, "plan1", []ItemScoreInput{
		{ItemID: "i1", Score: 80},
		{ItemID: "i2", Score: 90},
		{ItemID: "i3", Score: 70},
	}); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	// Resubmit a single item; the aggregate still spans all three stored scores.
	if _, err := svc.SubmitSelfScores(ctx, actor, "plan1", []ItemScoreInput{
		{ItemID: "i1", Score: 100},
	}); err != nil {
		t.Fatalf("resubmission: %v", err)
	}

	res := store.results[resultKey("e1", nil)]
	want := (100*40 + 90*30 + 70*30) / 100.0
	if res.Score != want {
		t.Fatalf("aggregate after resubmission = %v, want %v", res.Score, want)
	}
}

func TestSubmitScoresSkipsForeignItems(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testResolver())
	actor := auth.Actor{UserID: "u1", Role: auth.RoleEmployee, EmployeeID: "e1"}

	if _, err := svc.SubmitSelfScores(context.Background(), actor, "plan1", []ItemScoreInput{
		{ItemID: "i1", Score: 50},
		{ItemID: "other-plan-item", Score: 100},
	}); err != nil {
		t.Fatalf("SubmitSelfScores: %v", err)
	}
	if _, ok := store.scores[resultKey("e1", nil)]["other-plan-item"]; ok {
		t.Fatalf("item outside the plan must not be stored")
	}
}

func TestSubmitScoresClosedPlan(t *testing.T) {
	store := newFakeStore()
	store.planStatus = PlanStatusClosed
	svc := NewService(store, testResolver())
	actor := auth.Actor{UserID: "u1", Role: auth.RoleEmployee, EmployeeID: "e1"}

	_, err := svc.SubmitSelfScores(context.Background(), actor, "plan1", nil)
	if !errors.Is(err, ErrPlanNotOpen) {
		t.Fatalf("expected ErrPlanNotOpen, got %v", err)
	}
}

func TestSubmitScoresUnlinkedProfile(t *testing.T) {
	svc := NewService(newFakeStore(), testResolver())
	actor := auth.Actor{UserID: "u1", Role: auth.RoleEmployee}

	_, err := svc.SubmitSelfScores(context.Background(), actor, "plan1", nil)
	if !errors.Is(err, ErrProfileNotLinked) {
		t.Fatalf("expected ErrProfileNotLinked, got %v", err)
	}
}

func TestSubmitReviewerScoresScope(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testResolver())
	manager := auth.Actor{UserID: "u2", Role: auth.RoleManager, EmployeeID: "e1"}
	ctx := context.Background()

	// Same department: allowed, stored under the reviewer's evaluator key.
	if _, err := svc.SubmitReviewerScores(ctx, manager, "plan1", "e2", []ItemScoreInput{
		{ItemID: "i1", Score: 75},
	}); err != nil {
		t.Fatalf("same-department review: %v", err)
	}
	evaluator := "e1"
	if _, ok := store.results[resultKey("e2", &evaluator)]; !ok {
		t.Fatalf("reviewer result row not created")
	}

	// Other department: out of scope.
	_, err := svc.SubmitReviewerScores(ctx, manager, "plan1", "e3", nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for cross-department review, got %v", err)
	}
}

func TestSubmitReviewerScoresUnknownTarget(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testResolver())
	ctx := context.Background()

	manager := auth.Actor{UserID: "u2", Role: auth.RoleManager, EmployeeID: "e1"}
	if _, err := svc.SubmitReviewerScores(ctx, manager, "plan1", "ghost", nil); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	// Admin scope bypass must not bypass the existence check.
	admin := auth.Actor{UserID: "ua", Role: auth.RoleHRAdmin, EmployeeID: "e2"}
	if _, err := svc.SubmitReviewerScores(ctx, admin, "plan1", "ghost", nil); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound for admin, got %v", err)
	}
	if len(store.results) != 0 {
		t.Fatalf("no result row may be created for an unknown target")
	}
}

func TestSubmitScoresReadsRubricInsideTransaction(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testResolver())
	actor := auth.Actor{UserID: "u1", Role: auth.RoleEmployee, EmployeeID: "e1"}

	if _, err := svc.SubmitSelfScores(context.Background(), actor, "plan1", []ItemScoreInput{
		{ItemID: "i1", Score: 80},
	}); err != nil {
		t.Fatalf("SubmitSelfScores: %v", err)
	}
	if len(store.calls) < 2 || store.calls[0] != "begin" || store.calls[1] != "weights" {
		t.Fatalf("weights must be read after the transaction opens, calls = %v", store.calls)
	}
}

func TestAggregatePlan(t *testing.T) {
	store := newFakeStore()
	store.bands = standardBands()
	svc := NewService(store, testResolver())
	ctx := context.Background()

	employee := auth.Actor{UserID: "u1", Role: auth.RoleEmployee, EmployeeID: "e1"}
	if _, err := svc.SubmitSelfScores(ctx, employee, "plan1", []ItemScoreInput{
		{ItemID: "i1", Score: 80},
		{ItemID: "i2", Score: 90},
		{ItemID: "i3", Score: 70},
	}); err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	admin := auth.Actor{UserID: "ua", Role: auth.RoleHRAdmin}
	out, err := svc.AggregatePlan(ctx, "plan1", admin)
	if err != nil {
		t.Fatalf("AggregatePlan: %v", err)
	}
	if out.Updated != 1 {
		t.Fatalf("updated = %d, want 1", out.Updated)
	}
	res := store.results[resultKey("e1", nil)]
	if res.Grade != "A" || !res.IsPromotionCandidate {
		t.Fatalf("grade = %q promotion=%v, want A/true", res.Grade, res.IsPromotionCandidate)
	}

	if _, err := svc.AggregatePlan(ctx, "plan1", employee); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin aggregate, got %v", err)
	}
	if _, err := svc.AggregatePlan(ctx, "missing", admin); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}
