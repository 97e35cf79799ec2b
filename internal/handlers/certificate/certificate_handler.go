package certificate

import (
	"ead-service/internal/middleware"
	"ead-service/internal/pkg/response"
	certsvc "ead-service/internal/service/certificate"

	"github.com/gin-gonic/gin"
)

type CertificateHandler struct {
	certs *certsvc.Service
}

func NewCertificateHandler(certs *certsvc.Service) *CertificateHandler {
	return &CertificateHandler{certs: certs}
}

// ForCourse returns the caller's certificate for a course, if issued.
func (h *CertificateHandler) ForCourse(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)

	cert, ok := h.certs.ForStudent(c.Request.Context(), principal, c.Param("courseId"))
	if !ok {
		response.NotFound(c, "no certificate issued for this course")
		return
	}

	response.Success(c, 0, "certificate retrieved", cert)
}

// Validate is the public certificate-validation surface: anyone holding a
// code can check it, no authentication involved.
func (h *CertificateHandler) Validate(c *gin.Context) {
	cert, err := h.certs.Validate(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.NotFound(c, "certificate not found")
		return
	}

	response.Success(c, 0, "certificate valid", cert)
}
