package actor

import (
	"context"
	"errors"
	"sync"

	"ead-service/internal/domain/profile"
	xerrors "ead-service/internal/pkg/errors"
	"ead-service/internal/service/guard"

	"go.uber.org/zap"
)

// Gate wraps the actor with the platform's fail-closed policy: a failed
// authorization query reads as false/absent, never as an error the caller
// has to handle. A query cut short by its context reads as still loading so
// the guard shows a checking state instead of denying on a partial answer.
type Gate struct {
	actor  Actor
	logger *zap.Logger

	mu     sync.Mutex
	scopes map[string]*scope
}

// scope is one principal's cancellation root. Every context bound to the
// principal dies with it.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewGate(actor Actor, logger *zap.Logger) *Gate {
	return &Gate{actor: actor, logger: logger, scopes: make(map[string]*scope)}
}

// Bind derives a query context scoped to the given principal. The context is
// cancelled when the request's parent is, or when the principal is
// invalidated, whichever comes first. Principals never affect each other's
// contexts. The returned release must be called when the request finishes.
func (g *Gate) Bind(parent context.Context, principal string) (context.Context, context.CancelFunc) {
	g.mu.Lock()
	sc, ok := g.scopes[principal]
	if !ok {
		base, cancel := context.WithCancel(context.Background())
		sc = &scope{ctx: base, cancel: cancel}
		g.scopes[principal] = sc
	}
	g.mu.Unlock()

	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(sc.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Invalidate cancels every query still in flight for the principal and
// resets its scope. Called when the principal's authorization facts change,
// so a stale answer can never be applied afterwards.
func (g *Gate) Invalidate(principal string) {
	g.mu.Lock()
	sc, ok := g.scopes[principal]
	if ok {
		delete(g.scopes, principal)
	}
	g.mu.Unlock()

	if ok {
		sc.cancel()
	}
}

// ProfileState resolves the backend profile query to its tagged variant.
func (g *Gate) ProfileState(ctx context.Context, token string) guard.ProfileState {
	p, err := g.actor.GetCallerUserProfile(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return guard.ProfileLoading()
		}
		g.logger.Warn("profile query failed, treating as absent", zap.Error(err))
		return guard.ProfileAbsent()
	}
	if p == nil {
		return guard.ProfileAbsent()
	}
	return guard.ProfilePresent(*p)
}

// IsAdmin resolves the admin check, failing closed to not-admin.
func (g *Gate) IsAdmin(ctx context.Context, token string) guard.Flag {
	admin, err := g.actor.IsCallerAdmin(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return guard.FlagLoading
		}
		g.logger.Warn("admin query failed, treating as not-admin", zap.Error(err))
		return guard.FlagFalse
	}
	return guard.FlagOf(admin)
}

// IsApproved resolves the approval check, failing closed to not-approved.
func (g *Gate) IsApproved(ctx context.Context, token string) guard.Flag {
	approved, err := g.actor.IsCallerApproved(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return guard.FlagLoading
		}
		g.logger.Warn("approval query failed, treating as not-approved", zap.Error(err))
		return guard.FlagFalse
	}
	return guard.FlagOf(approved)
}

// RequestApproval asks the actor to queue the caller for approval. A
// privilege refusal (admins carry no user role) is not an error; a
// transport failure is surfaced as retryable.
func (g *Gate) RequestApproval(ctx context.Context, token string) error {
	err := g.actor.RequestApproval(ctx, token)
	if err == nil {
		return nil
	}
	if errors.Is(err, xerrors.ErrForbidden) {
		g.logger.Debug("approval request refused by privilege, ignoring")
		return nil
	}
	return xerrors.Wrap(err, "approval request failed")
}

// ========== Admin passthroughs (errors propagate) ==========

func (g *Gate) SaveProfile(ctx context.Context, token string, p profile.UserProfile) error {
	return g.actor.SaveCallerUserProfile(ctx, token, p)
}

func (g *Gate) ListApprovals(ctx context.Context, token string) ([]profile.UserApprovalInfo, error) {
	return g.actor.ListApprovals(ctx, token)
}

func (g *Gate) SetApproval(ctx context.Context, token, principal string, status profile.ApprovalStatus) error {
	return g.actor.SetApproval(ctx, token, principal, status)
}

func (g *Gate) AssignUserRole(ctx context.Context, token, principal string, role profile.UserRole) error {
	return g.actor.AssignUserRole(ctx, token, principal, role)
}
