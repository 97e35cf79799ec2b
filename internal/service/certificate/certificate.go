package certificate

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"ead-service/internal/domain/certificate"
	"ead-service/internal/domain/course"
	xerrors "ead-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Store is the slice of the certificate repository this service uses.
type Store interface {
	SaveCertificate(ctx context.Context, cert certificate.Certificate) error
	GetCertificateByCode(ctx context.Context, code string) (certificate.Certificate, bool)
	GetCertificateForStudent(ctx context.Context, principal, courseID string) (certificate.Certificate, bool)
	DeleteCertificateByCode(ctx context.Context, code string) (bool, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// GenerateCode derives a 12-character uppercase alphanumeric lookup code
// from principal, course and issue time. The timestamp keeps collisions
// unlikely; the code is not a security boundary.
func GenerateCode(principalID, courseID string, at time.Time) string {
	encoded := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s-%s-%d", principalID, courseID, at.UnixMilli())),
	)
	var b strings.Builder
	for _, r := range encoded {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	code := strings.ToUpper(b.String())
	if len(code) > 12 {
		code = code[:12]
	}
	return code
}

// Issue creates (or re-issues) the certificate for a (principal, course)
// pair. Re-issuance overwrites the previous record; the pair never holds
// more than one certificate.
func (s *Service) Issue(ctx context.Context, principal, studentName, cpf string, c course.Course) (certificate.Certificate, error) {
	now := s.now()
	cert := certificate.Certificate{
		Code:           GenerateCode(principal, c.ID, now),
		StudentName:    studentName,
		CPF:            cpf,
		CourseName:     c.Title,
		CourseID:       c.ID,
		CompletionDate: now.UnixMilli(),
		PrincipalID:    principal,
	}
	if err := s.store.SaveCertificate(ctx, cert); err != nil {
		return certificate.Certificate{}, xerrors.Wrap(err, "failed to save certificate")
	}
	s.logger.Info("certificate issued",
		zap.String("code", cert.Code),
		zap.String("course_id", c.ID),
	)
	return cert, nil
}

// ForStudent returns the certificate a principal holds for a course.
func (s *Service) ForStudent(ctx context.Context, principal, courseID string) (certificate.Certificate, bool) {
	return s.store.GetCertificateForStudent(ctx, principal, courseID)
}

// Validate looks a certificate up by public code. No authentication is
// involved; a code resolves for as long as its record exists.
func (s *Service) Validate(ctx context.Context, code string) (certificate.Certificate, error) {
	cert, ok := s.store.GetCertificateByCode(ctx, code)
	if !ok {
		return certificate.Certificate{}, xerrors.ErrNotFound
	}
	return cert, nil
}

// Revoke removes a certificate record by code.
func (s *Service) Revoke(ctx context.Context, code string) error {
	removed, err := s.store.DeleteCertificateByCode(ctx, code)
	if err != nil {
		return xerrors.Wrap(err, "failed to revoke certificate")
	}
	if !removed {
		return xerrors.ErrNotFound
	}
	s.logger.Info("certificate revoked", zap.String("code", code))
	return nil
}
