package admin

import (
	"errors"
	"net/http"

	"ead-service/internal/domain/course"
	"ead-service/internal/domain/profile"
	"ead-service/internal/middleware"
	xerrors "ead-service/internal/pkg/errors"
	"ead-service/internal/pkg/response"
	"ead-service/internal/service/actor"
	certsvc "ead-service/internal/service/certificate"
	coursesvc "ead-service/internal/service/course"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	gate    *actor.Gate
	courses *coursesvc.Service
	certs   *certsvc.Service
}

func NewAdminHandler(gate *actor.Gate, courses *coursesvc.Service, certs *certsvc.Service) *AdminHandler {
	return &AdminHandler{
		gate:    gate,
		courses: courses,
		certs:   certs,
	}
}

// ========== Approval Queue ==========

// ListApprovals returns the approval queue from the backend actor.
func (h *AdminHandler) ListApprovals(c *gin.Context) {
	token := middleware.MustGetToken(c)

	approvals, err := h.gate.ListApprovals(c.Request.Context(), token)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "cannot reach approval authority", err)
		return
	}

	response.Success(c, 0, "approvals retrieved", approvals)
}

// SetApproval updates a principal's approval status.
func (h *AdminHandler) SetApproval(c *gin.Context) {
	token := middleware.MustGetToken(c)

	var req profile.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		response.ValidationError(c, "invalid approval status", err)
		return
	}

	principal := c.Param("principal")
	if err := h.gate.SetApproval(c.Request.Context(), token, principal, req.Status); err != nil {
		response.Error(c, http.StatusBadGateway, "failed to set approval", err)
		return
	}
	h.gate.Invalidate(principal)

	response.Success(c, 0, "approval updated", nil)
}

// AssignRole assigns a role to a principal.
func (h *AdminHandler) AssignRole(c *gin.Context) {
	token := middleware.MustGetToken(c)

	var req profile.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		response.ValidationError(c, "invalid role", err)
		return
	}

	principal := c.Param("principal")
	if err := h.gate.AssignUserRole(c.Request.Context(), token, principal, req.Role); err != nil {
		response.Error(c, http.StatusBadGateway, "failed to assign role", err)
		return
	}
	h.gate.Invalidate(principal)

	response.Success(c, 0, "role assigned", nil)
}

// ========== Course CRUD ==========

func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req course.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid course", err)
		return
	}

	created, err := h.courses.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create course", err)
		return
	}

	response.Success(c, http.StatusCreated, "course created", created)
}

func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	if err := h.courses.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		h.courseError(c, err)
		return
	}
	response.Success(c, 0, "course deleted", nil)
}

func (h *AdminHandler) AddModule(c *gin.Context) {
	var req course.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid module", err)
		return
	}

	mod, err := h.courses.AddModule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.courseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "module added", mod)
}

func (h *AdminHandler) DeleteModule(c *gin.Context) {
	if err := h.courses.DeleteModule(c.Request.Context(), c.Param("id"), c.Param("moduleId")); err != nil {
		h.courseError(c, err)
		return
	}
	response.Success(c, 0, "module deleted", nil)
}

func (h *AdminHandler) AddLesson(c *gin.Context) {
	var req course.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid lesson", err)
		return
	}

	lesson, err := h.courses.AddLesson(c.Request.Context(), c.Param("id"), c.Param("moduleId"), &req)
	if err != nil {
		h.courseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "lesson added", lesson)
}

func (h *AdminHandler) DeleteLesson(c *gin.Context) {
	if err := h.courses.DeleteLesson(c.Request.Context(), c.Param("id"), c.Param("moduleId"), c.Param("lessonId")); err != nil {
		h.courseError(c, err)
		return
	}
	response.Success(c, 0, "lesson deleted", nil)
}

// ========== Certificates ==========

// RevokeCertificate deletes a certificate record by code.
func (h *AdminHandler) RevokeCertificate(c *gin.Context) {
	if err := h.certs.Revoke(c.Request.Context(), c.Param("code")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "certificate not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to revoke certificate", err)
		return
	}
	response.Success(c, 0, "certificate revoked", nil)
}

func (h *AdminHandler) courseError(c *gin.Context, err error) {
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "course operation failed", err)
}
