package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"jscorphr/internal/domain/auth"
)

type StoreAPI interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	// RunForUpdateTx loads the run and locks its row for the duration of the
	// transaction, serializing concurrent calculations of the same run.
	RunForUpdateTx(ctx context.Context, tx pgx.Tx, runID string) (PayRun, error)
	ActivePayGroupEmployeesTx(ctx context.Context, tx pgx.Tx, payGroupID string) ([]string, error)
	WorkedHoursTx(ctx context.Context, tx pgx.Tx, employeeID, yearMonth string) (float64, error)
	ResultEmployeesTx(ctx context.Context, tx pgx.Tx, runID string) (map[string]bool, error)
	UpsertResultTx(ctx context.Context, tx pgx.Tx, runID, employeeID string, gross, deduction, net float64) error
	MarkCalculatedTx(ctx context.Context, tx pgx.Tx, runID string, at time.Time) error

	GetRun(ctx context.Context, runID string) (PayRun, error)
	ListRuns(ctx context.Context) ([]PayRun, error)
	ListResults(ctx context.Context, runID string, scope auth.ScopeFilter) ([]PayResult, error)
	RegisterRows(ctx context.Context, runID string) ([]RegisterRow, error)
	PayslipData(ctx context.Context, runID, employeeID string) (PayslipData, error)
}
