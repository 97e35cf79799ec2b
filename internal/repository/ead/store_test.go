package ead

import (
	"context"
	"strings"
	"testing"
	"time"

	"ead-service/internal/domain/certificate"
	"ead-service/internal/domain/profile"
	"ead-service/internal/pkg/kv"

	"go.uber.org/zap"
)

func TestLocalProfileRoundTrip(t *testing.T) {
	repo := NewProfileRepository(kv.NewMemory(), zap.NewNop())
	ctx := context.Background()

	if p := repo.GetLocalProfile(ctx, "user-1"); p != nil {
		t.Fatalf("expected nil before save, got %+v", p)
	}

	saved := profile.LocalProfile{
		Email:   "maria@example.com",
		CPF:     "123.456.789-00",
		Phone:   "+55 11 99999-0000",
		Company: "Empresa LTDA",
	}
	if err := repo.SaveLocalProfile(ctx, "user-1", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := repo.GetLocalProfile(ctx, "user-1")
	if got == nil || *got != saved {
		t.Fatalf("got %+v, want %+v", got, saved)
	}

	// Profiles are scoped per principal.
	if p := repo.GetLocalProfile(ctx, "user-2"); p != nil {
		t.Fatalf("leaked across principals: %+v", p)
	}
}

func TestProgressRoundTripAndCompletionRule(t *testing.T) {
	repo := NewProgressRepository(kv.NewMemory(), zap.NewNop())
	repo.now = func() time.Time { return time.UnixMilli(1700000000000) }
	ctx := context.Background()

	if p := repo.GetProgress(ctx, "user-1"); len(p) != 0 {
		t.Fatalf("expected empty map, got %+v", p)
	}

	if err := repo.UpdateLessonProgress(ctx, "user-1", "les-1", 30, 60); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec := repo.GetProgress(ctx, "user-1")["les-1"]
	if rec.Completed || rec.SecondsWatched != 30 || rec.LastWatched != 1700000000000 {
		t.Fatalf("got %+v", rec)
	}

	if err := repo.UpdateLessonProgress(ctx, "user-1", "les-1", 60, 60); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec := repo.GetProgress(ctx, "user-1")["les-1"]; !rec.Completed {
		t.Fatalf("reaching duration must complete: %+v", rec)
	}
}

func TestCertificateUpsertAndDelete(t *testing.T) {
	repo := NewCertificateRepository(kv.NewMemory(), zap.NewNop())
	ctx := context.Background()

	first := certificate.Certificate{Code: "AAA111BBB222", PrincipalID: "user-1", CourseID: "course-1"}
	if err := repo.SaveCertificate(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := certificate.Certificate{Code: "CCC333DDD444", PrincipalID: "user-1", CourseID: "course-1"}
	if err := repo.SaveCertificate(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	if certs := repo.GetCertificates(ctx); len(certs) != 1 {
		t.Fatalf("got %d certificates, want 1", len(certs))
	}
	if _, ok := repo.GetCertificateByCode(ctx, "AAA111BBB222"); ok {
		t.Fatal("overwritten code still resolves")
	}
	if got, ok := repo.GetCertificateForStudent(ctx, "user-1", "course-1"); !ok || got.Code != "CCC333DDD444" {
		t.Fatalf("got (%+v, %v)", got, ok)
	}

	other := certificate.Certificate{Code: "EEE555FFF666", PrincipalID: "user-2", CourseID: "course-1"}
	if err := repo.SaveCertificate(ctx, other); err != nil {
		t.Fatalf("save: %v", err)
	}

	removed, err := repo.DeleteCertificateByCode(ctx, "CCC333DDD444")
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	if _, ok := repo.GetCertificateForStudent(ctx, "user-2", "course-1"); !ok {
		t.Fatal("unrelated certificate lost on delete")
	}

	removed, err = repo.DeleteCertificateByCode(ctx, "CCC333DDD444")
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}
}

func TestAccessLogSessionLifecycle(t *testing.T) {
	repo := NewAccessLogRepository(kv.NewMemory(), zap.NewNop())
	ts := int64(1700000000000)
	repo.now = func() time.Time { return time.UnixMilli(ts) }
	ctx := context.Background()

	// Ending with no open session is a no-op.
	if err := repo.EndSession(ctx, "user-1"); err != nil {
		t.Fatalf("end without start: %v", err)
	}
	if logs := repo.GetLogs(ctx, "user-1"); len(logs) != 0 {
		t.Fatalf("phantom log entries: %+v", logs)
	}

	session, err := repo.StartSession(ctx, "user-1", "Mozilla/5.0")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.ID == "" || session.SessionStart != ts {
		t.Fatalf("got %+v", session)
	}

	ts += 90_000
	if err := repo.EndSession(ctx, "user-1"); err != nil {
		t.Fatalf("end: %v", err)
	}

	logs := repo.GetLogs(ctx, "user-1")
	if len(logs) != 1 {
		t.Fatalf("got %d entries, want 1", len(logs))
	}
	if logs[0].ID != session.ID || logs[0].SessionEnd != ts {
		t.Fatalf("got %+v", logs[0])
	}

	// A second end call finds no open session and must not duplicate.
	if err := repo.EndSession(ctx, "user-1"); err != nil {
		t.Fatalf("repeat end: %v", err)
	}
	if logs := repo.GetLogs(ctx, "user-1"); len(logs) != 1 {
		t.Fatalf("duplicated log entry: %+v", logs)
	}
}

func TestStartSessionTruncatesDevice(t *testing.T) {
	repo := NewAccessLogRepository(kv.NewMemory(), zap.NewNop())
	session, err := repo.StartSession(context.Background(), "user-1", strings.Repeat("x", 200))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(session.Device) != 80 {
		t.Fatalf("device length %d, want 80", len(session.Device))
	}
}

func TestStartSessionReplacesOpenSlot(t *testing.T) {
	repo := NewAccessLogRepository(kv.NewMemory(), zap.NewNop())
	ctx := context.Background()

	first, err := repo.StartSession(ctx, "user-1", "a")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, err := repo.StartSession(ctx, "user-1", "b")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if err := repo.EndSession(ctx, "user-1"); err != nil {
		t.Fatalf("end: %v", err)
	}

	logs := repo.GetLogs(ctx, "user-1")
	if len(logs) != 1 || logs[0].ID != second.ID {
		t.Fatalf("abandoned session not dropped: %+v (first %s)", logs, first.ID)
	}
}
