package player

import (
	"errors"
	"net/http"

	"ead-service/internal/middleware"
	xerrors "ead-service/internal/pkg/errors"
	"ead-service/internal/pkg/response"
	"ead-service/internal/repository/ead"
	"ead-service/internal/service/actor"
	playersvc "ead-service/internal/service/player"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	player   *playersvc.Service
	gate     *actor.Gate
	profiles *ead.ProfileRepository
}

func NewPlayerHandler(player *playersvc.Service, gate *actor.Gate, profiles *ead.ProfileRepository) *PlayerHandler {
	return &PlayerHandler{
		player:   player,
		gate:     gate,
		profiles: profiles,
	}
}

// Play starts the watch timer for a lesson.
func (h *PlayerHandler) Play(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	token := middleware.MustGetToken(c)
	ctx := c.Request.Context()

	// The certificate needs the student's name and CPF; resolve them here
	// so the ticker never has to call out.
	var studentName, cpf string
	if p, ok := h.gate.ProfileState(ctx, token).Get(); ok {
		studentName = p.Name
	}
	if local := h.profiles.GetLocalProfile(ctx, principal); local != nil {
		cpf = local.CPF
	}

	status, err := h.player.Play(ctx, principal, c.Param("courseId"), c.Param("lessonId"), studentName, cpf)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "lesson not found")
		case errors.Is(err, xerrors.ErrLessonLocked):
			response.Forbidden(c, "complete the previous lesson first")
		default:
			response.Error(c, http.StatusInternalServerError, "failed to start playback", err)
		}
		return
	}

	response.Success(c, 0, "playing", status)
}

// Pause stops the watch timer.
func (h *PlayerHandler) Pause(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)

	status, err := h.player.Pause(principal, c.Param("lessonId"))
	if err != nil {
		response.NotFound(c, "no watch session for this lesson")
		return
	}

	response.Success(c, 0, "paused", status)
}

// Status reports the watch state of a lesson.
func (h *PlayerHandler) Status(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)

	status, err := h.player.Status(c.Request.Context(), principal, c.Param("courseId"), c.Param("lessonId"))
	if err != nil {
		response.NotFound(c, "lesson not found")
		return
	}

	response.Success(c, 0, "status retrieved", status)
}
