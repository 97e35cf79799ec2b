package course

import (
	"errors"
	"net/http"

	"ead-service/internal/middleware"
	xerrors "ead-service/internal/pkg/errors"
	"ead-service/internal/pkg/response"
	coursesvc "ead-service/internal/service/course"
	progresssvc "ead-service/internal/service/progress"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courses  *coursesvc.Service
	progress *progresssvc.Service
}

func NewCourseHandler(courses *coursesvc.Service, progress *progresssvc.Service) *CourseHandler {
	return &CourseHandler{
		courses:  courses,
		progress: progress,
	}
}

// ListCourses returns the catalog with the caller's completion summary per
// course.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	ctx := c.Request.Context()

	type entry struct {
		Course   any `json:"course"`
		Progress any `json:"progress"`
	}
	var out []entry
	for _, crs := range h.courses.ListCourses(ctx) {
		out = append(out, entry{
			Course:   crs,
			Progress: h.progress.CourseProgress(ctx, principal, crs),
		})
	}

	response.Success(c, 0, "courses retrieved", out)
}

// GetCourse returns one course with per-lesson watch state and unlock
// status for the caller.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	ctx := c.Request.Context()

	crs, err := h.courses.GetCourse(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load course", err)
		return
	}

	type lessonState struct {
		LessonID  string `json:"lessonId"`
		Completed bool   `json:"completed"`
		Unlocked  bool   `json:"unlocked"`
	}
	records := h.progress.ProgressMap(ctx, principal)
	var lessons []lessonState
	for _, l := range crs.Lessons() {
		lessons = append(lessons, lessonState{
			LessonID:  l.ID,
			Completed: records[l.ID].Completed,
			Unlocked:  progresssvc.Unlocked(records, crs, l.ID),
		})
	}
	summary := h.progress.CourseProgress(ctx, principal, crs)

	response.Success(c, 0, "course retrieved", gin.H{
		"course":   crs,
		"progress": summary,
		"lessons":  lessons,
		"complete": summary.Total > 0 && summary.Completed == summary.Total,
	})
}

// GetCourseProgress returns the caller's completion summary for one course.
func (h *CourseHandler) GetCourseProgress(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	ctx := c.Request.Context()

	crs, err := h.courses.GetCourse(ctx, c.Param("id"))
	if err != nil {
		response.NotFound(c, "course not found")
		return
	}

	response.Success(c, 0, "progress retrieved", h.progress.CourseProgress(ctx, principal, crs))
}
