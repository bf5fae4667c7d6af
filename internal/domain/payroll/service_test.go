package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"jscorphr/internal/domain/auth"
)

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeStore struct {
	run          PayRun
	employees    []string
	workedHours  map[string]float64
	results      map[string]PayResult
	calculatedAt *time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		run:         PayRun{ID: "run1", PayGroupID: "pg1", YearMonth: "202601", Status: RunStatusDraft},
		workedHours: map[string]float64{},
		results:     map[string]PayResult{},
	}
}

func (f *fakeStore) BeginTx(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (f *fakeStore) RunForUpdateTx(_ context.Context, _ pgx.Tx, runID string) (PayRun, error) {
	if runID != f.run.ID {
		return PayRun{}, ErrRunNotFound
	}
	return f.run, nil
}

func (f *fakeStore) ActivePayGroupEmployeesTx(_ context.Context, _ pgx.Tx, payGroupID string) ([]string, error) {
	if payGroupID != f.run.PayGroupID {
		return nil, nil
	}
	return f.employees, nil
}

func (f *fakeStore) WorkedHoursTx(_ context.Context, _ pgx.Tx, employeeID, _ string) (float64, error) {
	return f.workedHours[employeeID], nil
}

func (f *fakeStore) ResultEmployeesTx(_ context.Context, _ pgx.Tx, _ string) (map[string]bool, error) {
	existing := map[string]bool{}
	for employeeID := range f.results {
		existing[employeeID] = true
	}
	return existing, nil
}

func (f *fakeStore) UpsertResultTx(_ context.Context, _ pgx.Tx, runID, employeeID string, gross, deduction, net float64) error {
	f.results[employeeID] = PayResult{
		PayRunID:     runID,
		EmployeeID:   employeeID,
		GrossAmount:  gross,
		DeductAmount: deduction,
		NetAmount:    net,
		Currency:     DefaultCurrency,
		Status:       ResultStatusCalculated,
	}
	return nil
}

func (f *fakeStore) MarkCalculatedTx(_ context.Context, _ pgx.Tx, _ string, at time.Time) error {
	f.run.Status = RunStatusCalculated
	f.calculatedAt = &at
	return nil
}

func (f *fakeStore) GetRun(_ context.Context, runID string) (PayRun, error) {
	if runID != f.run.ID {
		return PayRun{}, ErrRunNotFound
	}
	return f.run, nil
}

func (f *fakeStore) ListRuns(context.Context) ([]PayRun, error) { return []PayRun{f.run}, nil }

func (f *fakeStore) ListResults(_ context.Context, _ string, _ auth.ScopeFilter) ([]PayResult, error) {
	var out []PayResult
	for _, res := range f.results {
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeStore) RegisterRows(context.Context, string) ([]RegisterRow, error) { return nil, nil }

func (f *fakeStore) PayslipData(context.Context, string, string) (PayslipData, error) {
	return PayslipData{}, ErrResultNotFound
}

var hrActor = auth.Actor{UserID: "u1", Role: auth.RoleHRAdmin}

func TestCalculateProducesResultsForPayGroup(t *testing.T) {
	store := newFakeStore()
	store.employees = []string{"e1", "e2"}
	store.workedHours["e1"] = 160
	// e2 has no attendance summary: zero hours, zero pay.

	svc := NewService(store, nil)
	res, err := svc.Calculate(context.Background(), "run1", hrActor)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.Created != 2 || res.Updated != 0 {
		t.Fatalf("expected 2 created / 0 updated, got %+v", res)
	}

	first := store.results["e1"]
	if first.GrossAmount != 160*HourlyRate {
		t.Fatalf("expected gross %v, got %v", 160*HourlyRate, first.GrossAmount)
	}
	if first.NetAmount != first.GrossAmount-first.DeductAmount {
		t.Fatalf("net must be gross minus deduction, got %+v", first)
	}
	second := store.results["e2"]
	if second.GrossAmount != 0 || second.NetAmount != 0 {
		t.Fatalf("missing attendance must mean zero pay, got %+v", second)
	}
	if store.run.Status != RunStatusCalculated || store.calculatedAt == nil {
		t.Fatalf("run must end CALCULATED with a timestamp, got %+v", store.run)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.employees = []string{"e1", "e2"}
	store.workedHours["e1"] = 162
	store.workedHours["e2"] = 140

	svc := NewService(store, nil)
	if _, err := svc.Calculate(context.Background(), "run1", hrActor); err != nil {
		t.Fatalf("first calculate: %v", err)
	}
	firstPass := map[string]PayResult{}
	for id, res := range store.results {
		firstPass[id] = res
	}

	res, err := svc.Calculate(context.Background(), "run1", hrActor)
	if err != nil {
		t.Fatalf("second calculate: %v", err)
	}
	if res.Created != 0 || res.Updated != 2 {
		t.Fatalf("expected 0 created / 2 updated on recalculation, got %+v", res)
	}
	for id, res := range store.results {
		if res != firstPass[id] {
			t.Fatalf("recalculation changed %s: %+v vs %+v", id, res, firstPass[id])
		}
	}
}

func TestCalculateEmptyPayGroupSucceeds(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	res, err := svc.Calculate(context.Background(), "run1", hrActor)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.Created != 0 || res.Updated != 0 {
		t.Fatalf("expected zero counts, got %+v", res)
	}
	if store.run.Status != RunStatusCalculated {
		t.Fatalf("empty run must still end CALCULATED, got %s", store.run.Status)
	}
}

func TestCalculateRequiresAdminScope(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	for _, role := range []string{auth.RoleManager, auth.RoleEmployee} {
		_, err := svc.Calculate(context.Background(), "run1", auth.Actor{UserID: "u1", Role: role, EmployeeID: "e1"})
		if err != ErrForbidden {
			t.Fatalf("expected ErrForbidden for %s, got %v", role, err)
		}
	}
}

func TestCalculateUnknownRun(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	if _, err := svc.Calculate(context.Background(), "missing", hrActor); err != ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
