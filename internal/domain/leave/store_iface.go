package leave

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListRequests(ctx context.Context, userID, status string) ([]LeaveRequest, error)
	GetRequest(ctx context.Context, requestID string) (LeaveRequest, error)
	CreateRequest(ctx context.Context, req LeaveRequest) (string, error)
	SetDecision(ctx context.Context, requestID, status, approverID string) error
	DeleteRequest(ctx context.Context, requestID string) error
	ListApprovedByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListApprovedCovering(ctx context.Context, day time.Time) ([]LeaveRequest, error)
}
