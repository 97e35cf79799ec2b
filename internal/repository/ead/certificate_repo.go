package ead

import (
	"context"

	"ead-service/internal/domain/certificate"
	"ead-service/internal/pkg/kv"

	"go.uber.org/zap"
)

type CertificateRepository struct {
	store  kv.Store
	logger *zap.Logger
}

func NewCertificateRepository(store kv.Store, logger *zap.Logger) *CertificateRepository {
	return &CertificateRepository{store: store, logger: logger}
}

func (r *CertificateRepository) GetCertificates(ctx context.Context) []certificate.Certificate {
	var certs []certificate.Certificate
	loadJSON(ctx, r.store, r.logger, certificatesKey(), &certs)
	return certs
}

// SaveCertificate upserts by (principal, course): re-issuance overwrites the
// existing record so at most one certificate exists per pair.
func (r *CertificateRepository) SaveCertificate(ctx context.Context, cert certificate.Certificate) error {
	certs := r.GetCertificates(ctx)
	replaced := false
	for i, c := range certs {
		if c.CourseID == cert.CourseID && c.PrincipalID == cert.PrincipalID {
			certs[i] = cert
			replaced = true
			break
		}
	}
	if !replaced {
		certs = append(certs, cert)
	}
	return storeJSON(ctx, r.store, certificatesKey(), certs)
}

func (r *CertificateRepository) GetCertificateByCode(ctx context.Context, code string) (certificate.Certificate, bool) {
	for _, c := range r.GetCertificates(ctx) {
		if c.Code == code {
			return c, true
		}
	}
	return certificate.Certificate{}, false
}

func (r *CertificateRepository) GetCertificateForStudent(ctx context.Context, principal, courseID string) (certificate.Certificate, bool) {
	for _, c := range r.GetCertificates(ctx) {
		if c.PrincipalID == principal && c.CourseID == courseID {
			return c, true
		}
	}
	return certificate.Certificate{}, false
}

// DeleteCertificateByCode removes a certificate record. Once removed the
// public validation surface stops resolving the code.
func (r *CertificateRepository) DeleteCertificateByCode(ctx context.Context, code string) (bool, error) {
	certs := r.GetCertificates(ctx)
	kept := certs[:0]
	removed := false
	for _, c := range certs {
		if c.Code == code {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return false, nil
	}
	return true, storeJSON(ctx, r.store, certificatesKey(), kept)
}
