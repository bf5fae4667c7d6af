package leave

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"jscorphr/internal/domain/auth"
)

type StoreAPI interface {
	CreateRequest(ctx context.Context, employeeID string, in CreateInput) (Request, error)
	GetRequest(ctx context.Context, id string) (Request, error)
	ListRequests(ctx context.Context, scope auth.ScopeFilter, filter ListFilter) ([]Request, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)
	RequestForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (Request, error)
	// DecideRequestTx flips a REQUESTED row to the given status. The UPDATE is
	// guarded on the current status; false means another decision won the race.
	DecideRequestTx(ctx context.Context, tx pgx.Tx, id, status string, approverEmployeeID *string, decidedAt time.Time) (bool, error)
}
