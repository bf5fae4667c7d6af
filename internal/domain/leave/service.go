package leave

import (
	"context"
	"time"

	"jscorphr/internal/domain/auth"
)

type Service struct {
	store  StoreAPI
	scopes *auth.ScopeResolver
}

func NewService(store StoreAPI, scopes *auth.ScopeResolver) *Service {
	return &Service{store: store, scopes: scopes}
}

// Request files a new leave request for the actor's own employee profile.
func (s *Service) Request(ctx context.Context, actor auth.Actor, in CreateInput) (Request, error) {
	if !actor.Linked() {
		return Request{}, ErrProfileNotLinked
	}
	if in.EndDate.Before(in.StartDate) {
		return Request{}, ErrInvalidRange
	}
	return s.store.CreateRequest(ctx, actor.EmployeeID, in)
}

// Decide resolves a REQUESTED leave request to APPROVED or REJECTED. A
// request is decided exactly once; re-deciding in either direction fails
// with ErrInvalidTransition. The decision timestamp is stamped for both
// outcomes so a rejection records when it happened.
func (s *Service) Decide(ctx context.Context, actor auth.Actor, requestID, outcome string) (Request, error) {
	if actor.Role != auth.RoleAdmin && actor.Role != auth.RoleHRAdmin && actor.Role != auth.RoleManager {
		return Request{}, ErrForbidden
	}

	var status string
	switch outcome {
	case OutcomeApprove:
		status = StatusApproved
	case OutcomeReject:
		status = StatusRejected
	default:
		return Request{}, ErrInvalidTransition
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return Request{}, err
	}
	defer tx.Rollback(ctx)

	req, err := s.store.RequestForUpdateTx(ctx, tx, requestID)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusRequested {
		return Request{}, ErrInvalidTransition
	}

	if actor.Role == auth.RoleManager {
		permitted, err := s.scopes.Permits(ctx, actor, req.EmployeeID)
		if err != nil {
			return Request{}, err
		}
		if !permitted {
			return Request{}, ErrForbidden
		}
	}

	var approver *string
	if actor.Linked() {
		employeeID := actor.EmployeeID
		approver = &employeeID
	}
	decidedAt := time.Now().UTC()

	updated, err := s.store.DecideRequestTx(ctx, tx, requestID, status, approver, decidedAt)
	if err != nil {
		return Request{}, err
	}
	if !updated {
		return Request{}, ErrInvalidTransition
	}
	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	req.Status = status
	req.ApproverEmployeeID = approver
	req.ApprovedAt = &decidedAt
	return req, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, requestID string) (Request, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	permitted, err := s.scopes.Permits(ctx, actor, req.EmployeeID)
	if err != nil {
		return Request{}, err
	}
	if !permitted {
		return Request{}, ErrForbidden
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, scope auth.ScopeFilter, filter ListFilter) ([]Request, error) {
	return s.store.ListRequests(ctx, scope, filter)
}
