package actor

import (
	"context"

	"ead-service/internal/domain/profile"
)

// Actor is the external backend authority for profiles, roles and approval
// status. Every call is principal-scoped by the caller's bearer token and
// may fail; callers that gate access must degrade failures to false/absent.
type Actor interface {
	GetCallerUserProfile(ctx context.Context, token string) (*profile.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, token string, p profile.UserProfile) error
	IsCallerAdmin(ctx context.Context, token string) (bool, error)
	IsCallerApproved(ctx context.Context, token string) (bool, error)
	RequestApproval(ctx context.Context, token string) error
	ListApprovals(ctx context.Context, token string) ([]profile.UserApprovalInfo, error)
	SetApproval(ctx context.Context, token, principal string, status profile.ApprovalStatus) error
	AssignUserRole(ctx context.Context, token, principal string, role profile.UserRole) error
}
