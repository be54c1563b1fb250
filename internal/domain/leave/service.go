package leave

import (
	"context"
	"errors"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("request is not pending")
	ErrInvalidType  = errors.New("unknown leave type")
	ErrInvalidRange = errors.New("end date before start date")
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// List returns requests visible to the caller. Non-privileged callers only
// ever see their own requests, whatever userId they ask for.
func (s *Service) List(ctx context.Context, caller auth.UserContext, userID, status string) ([]LeaveRequest, error) {
	if !auth.Privileged(caller.Role) {
		userID = caller.UserID
	}
	return s.Store.ListRequests(ctx, userID, status)
}

// Get returns one request, ErrForbidden unless the caller owns it or holds
// the approval permission.
func (s *Service) Get(ctx context.Context, caller auth.UserContext, requestID string) (LeaveRequest, error) {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if req.UserID != caller.UserID && !auth.Privileged(caller.Role) {
		return LeaveRequest{}, ErrForbidden
	}
	return req, nil
}

type CreateInput struct {
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

func (s *Service) Create(ctx context.Context, caller auth.UserContext, input CreateInput) (LeaveRequest, error) {
	leaveType := strings.ToLower(strings.TrimSpace(input.Type))
	if !ValidType(leaveType) {
		return LeaveRequest{}, ErrInvalidType
	}
	if input.EndDate.Before(input.StartDate) {
		return LeaveRequest{}, ErrInvalidRange
	}

	req := LeaveRequest{
		UserID:    caller.UserID,
		Type:      leaveType,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    StatusPending,
		Reason:    strings.TrimSpace(input.Reason),
	}

	id, err := s.Store.CreateRequest(ctx, req)
	if err != nil {
		return LeaveRequest{}, err
	}
	return s.Store.GetRequest(ctx, id)
}

// Decide moves a pending request to approved or rejected and records the
// reviewer. Requests that already left the pending state are immutable, so a
// second reviewer racing on the same request gets ErrInvalidState instead of
// silently overwriting the first decision.
func (s *Service) Decide(ctx context.Context, caller auth.UserContext, requestID, status string) (LeaveRequest, error) {
	if status != StatusApproved && status != StatusRejected {
		return LeaveRequest{}, ErrInvalidState
	}
	if !auth.Allowed(caller.Role, auth.PermLeaveApprove) {
		return LeaveRequest{}, ErrForbidden
	}

	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if req.Status != StatusPending {
		return LeaveRequest{}, ErrInvalidState
	}

	if err := s.Store.SetDecision(ctx, requestID, status, caller.UserID); err != nil {
		return LeaveRequest{}, err
	}
	return s.Store.GetRequest(ctx, requestID)
}

// Cancel hard-deletes a pending request. Only the owner may cancel, and only
// while the request is still pending.
func (s *Service) Cancel(ctx context.Context, caller auth.UserContext, requestID string) (LeaveRequest, error) {
	req, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if req.UserID != caller.UserID {
		return LeaveRequest{}, ErrForbidden
	}
	if req.Status != StatusPending {
		return LeaveRequest{}, ErrInvalidState
	}
	if err := s.Store.DeleteRequest(ctx, requestID); err != nil {
		return LeaveRequest{}, err
	}
	return req, nil
}

// BalanceFor computes the caller-visible balance for one leave type from the
// user's approved requests.
func (s *Service) BalanceFor(ctx context.Context, userID, leaveType string) (Balance, error) {
	approved, err := s.Store.ListApprovedByUser(ctx, userID)
	if err != nil {
		return Balance{}, err
	}
	return ComputeBalance(approved, leaveType), nil
}

// Balances returns one balance per known leave type, for the summary cards.
func (s *Service) Balances(ctx context.Context, userID string) ([]Balance, error) {
	approved, err := s.Store.ListApprovedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Balance, 0, len(Allowances))
	for _, leaveType := range []string{TypeAnnual, TypeSick, TypePersonal, TypeHalfDay} {
		out = append(out, ComputeBalance(approved, leaveType))
	}
	return out, nil
}

// ApprovedCovering exposes approved requests overlapping a day for the
// attendance overview.
func (s *Service) ApprovedCovering(ctx context.Context, day time.Time) ([]LeaveRequest, error) {
	return s.Store.ListApprovedCovering(ctx, day)
}
