package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"ead-service/internal/domain/profile"
	xerrors "ead-service/internal/pkg/errors"
	"ead-service/internal/service/guard"

	"go.uber.org/zap"
)

var errBoom = errors.New("boom")

type fakeActor struct {
	profile     *profile.UserProfile
	profileErr  error
	admin       bool
	adminErr    error
	approved    bool
	approvedErr error
	requestErr  error
	delay       time.Duration
}

func (f *fakeActor) wait(ctx context.Context) error {
	if f.delay == 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(f.delay):
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeActor) GetCallerUserProfile(ctx context.Context, _ string) (*profile.UserProfile, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return f.profile, f.profileErr
}

func (f *fakeActor) SaveCallerUserProfile(context.Context, string, profile.UserProfile) error {
	return nil
}

func (f *fakeActor) IsCallerAdmin(ctx context.Context, _ string) (bool, error) {
	if err := f.wait(ctx); err != nil {
		return false, err
	}
	return f.admin, f.adminErr
}

func (f *fakeActor) IsCallerApproved(ctx context.Context, _ string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return f.approved, f.approvedErr
}

func (f *fakeActor) RequestApproval(context.Context, string) error { return f.requestErr }

func (f *fakeActor) ListApprovals(context.Context, string) ([]profile.UserApprovalInfo, error) {
	return nil, nil
}

func (f *fakeActor) SetApproval(context.Context, string, string, profile.ApprovalStatus) error {
	return nil
}

func (f *fakeActor) AssignUserRole(context.Context, string, string, profile.UserRole) error {
	return nil
}

func TestProfileStateVariants(t *testing.T) {
	ctx := context.Background()

	gate := NewGate(&fakeActor{profile: &profile.UserProfile{Name: "Maria"}}, zap.NewNop())
	state := gate.ProfileState(ctx, "tok")
	if p, ok := state.Get(); !ok || p.Name != "Maria" {
		t.Fatalf("got (%+v, %v), want present Maria", p, ok)
	}

	gate = NewGate(&fakeActor{}, zap.NewNop())
	if state := gate.ProfileState(ctx, "tok"); !state.IsAbsent() {
		t.Fatal("nil profile must read as absent")
	}
}

func TestQueriesFailClosed(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(&fakeActor{
		profileErr:  errBoom,
		admin:       true,
		adminErr:    errBoom,
		approved:    true,
		approvedErr: errBoom,
	}, zap.NewNop())

	if state := gate.ProfileState(ctx, "tok"); !state.IsAbsent() {
		t.Fatal("failed profile query must read as absent")
	}
	if flag := gate.IsAdmin(ctx, "tok"); flag != guard.FlagFalse {
		t.Fatalf("failed admin query: got %v, want FlagFalse", flag)
	}
	if flag := gate.IsApproved(ctx, "tok"); flag != guard.FlagFalse {
		t.Fatalf("failed approval query: got %v, want FlagFalse", flag)
	}
}

func TestCancelledQueryReadsAsLoading(t *testing.T) {
	gate := NewGate(&fakeActor{admin: true, approved: true}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if state := gate.ProfileState(ctx, "tok"); !state.IsLoading() {
		t.Fatal("cancelled profile query must stay loading")
	}
	if flag := gate.IsAdmin(ctx, "tok"); flag != guard.FlagLoading {
		t.Fatalf("cancelled admin query: got %v, want FlagLoading", flag)
	}
	if flag := gate.IsApproved(ctx, "tok"); flag != guard.FlagLoading {
		t.Fatalf("cancelled approval query: got %v, want FlagLoading", flag)
	}
}

func TestBindScopesArePerPrincipal(t *testing.T) {
	gate := NewGate(&fakeActor{}, zap.NewNop())

	first, release1 := gate.Bind(context.Background(), "user-1")
	defer release1()
	second, release2 := gate.Bind(context.Background(), "user-1")
	defer release2()
	other, release3 := gate.Bind(context.Background(), "user-2")
	defer release3()

	if first.Err() != nil || second.Err() != nil || other.Err() != nil {
		t.Fatal("fresh bind context already cancelled")
	}

	gate.Invalidate("user-1")
	if first.Err() == nil || second.Err() == nil {
		t.Fatal("invalidation must cancel all of the principal's contexts")
	}
	if other.Err() != nil {
		t.Fatal("invalidation must not touch other principals")
	}

	// A fresh bind after invalidation starts a new live scope.
	fresh, release4 := gate.Bind(context.Background(), "user-1")
	defer release4()
	if fresh.Err() != nil {
		t.Fatal("post-invalidation bind context already cancelled")
	}
}

func TestBindReleaseCancelsOnlyItsContext(t *testing.T) {
	gate := NewGate(&fakeActor{}, zap.NewNop())

	first, release1 := gate.Bind(context.Background(), "user-1")
	second, release2 := gate.Bind(context.Background(), "user-1")
	defer release2()

	release1()
	if first.Err() == nil {
		t.Fatal("release must cancel its own context")
	}
	if second.Err() != nil {
		t.Fatal("release must not cancel a sibling context")
	}
}

func TestQuerySurvivesOtherPrincipalBind(t *testing.T) {
	fake := &fakeActor{admin: true, delay: 100 * time.Millisecond}
	gate := NewGate(fake, zap.NewNop())

	ctxA, releaseA := gate.Bind(context.Background(), "user-a")
	defer releaseA()

	done := make(chan guard.Flag, 1)
	go func() { done <- gate.IsAdmin(ctxA, "tok-a") }()

	// Another principal binding while A's query is in flight.
	time.Sleep(20 * time.Millisecond)
	_, releaseB := gate.Bind(context.Background(), "user-b")
	releaseB()

	if flag := <-done; flag != guard.FlagTrue {
		t.Fatalf("got %v, want FlagTrue", flag)
	}
}

func TestRequestApprovalClassification(t *testing.T) {
	ctx := context.Background()

	gate := NewGate(&fakeActor{}, zap.NewNop())
	if err := gate.RequestApproval(ctx, "tok"); err != nil {
		t.Fatalf("clean request: %v", err)
	}

	// A privilege refusal is expected for admin callers and swallowed.
	gate = NewGate(&fakeActor{requestErr: xerrors.ErrForbidden}, zap.NewNop())
	if err := gate.RequestApproval(ctx, "tok"); err != nil {
		t.Fatalf("privilege refusal must be silent, got %v", err)
	}

	// A transport failure surfaces so the caller can retry.
	gate = NewGate(&fakeActor{requestErr: errBoom}, zap.NewNop())
	if err := gate.RequestApproval(ctx, "tok"); !errors.Is(err, errBoom) {
		t.Fatalf("transport failure lost: %v", err)
	}
}
