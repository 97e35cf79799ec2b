package profile

import (
	"net/http"

	"ead-service/internal/domain/profile"
	"ead-service/internal/middleware"
	"ead-service/internal/pkg/response"
	"ead-service/internal/repository/ead"
	"ead-service/internal/service/accesslog"
	"ead-service/internal/service/actor"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	gate     *actor.Gate
	profiles *ead.ProfileRepository
	sessions *accesslog.Service
}

func NewProfileHandler(gate *actor.Gate, profiles *ead.ProfileRepository, sessions *accesslog.Service) *ProfileHandler {
	return &ProfileHandler{
		gate:     gate,
		profiles: profiles,
		sessions: sessions,
	}
}

// Register saves the backend profile row, stores the supplementary local
// profile and queues the caller for approval. Validation happens before
// any mutation.
func (h *ProfileHandler) Register(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	token := middleware.MustGetToken(c)

	var req profile.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration", err)
		return
	}

	ctx := c.Request.Context()

	if err := h.gate.SaveProfile(ctx, token, profile.UserProfile{Name: req.Name}); err != nil {
		response.Error(c, http.StatusBadGateway, "cannot connect to backend, try again", err)
		return
	}

	local := profile.LocalProfile{
		Email:   req.Email,
		CPF:     req.CPF,
		Phone:   req.Phone,
		Company: req.Company,
	}
	if err := h.profiles.SaveLocalProfile(ctx, principal, local); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save local profile", err)
		return
	}

	if err := h.gate.RequestApproval(ctx, token); err != nil {
		// Registration itself succeeded; the approval request can be retried.
		response.Success(c, http.StatusCreated, "registered, approval request pending retry", gin.H{
			"approvalRequested": false,
		})
		return
	}

	response.Success(c, http.StatusCreated, "registered", gin.H{"approvalRequested": true})
}

// Me returns the backend profile (when resolvable) and the local profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	token := middleware.MustGetToken(c)
	ctx := c.Request.Context()

	state := h.gate.ProfileState(ctx, token)
	var backend *profile.UserProfile
	if p, ok := state.Get(); ok {
		backend = &p
	}

	response.Success(c, 0, "profile retrieved", gin.H{
		"profile":      backend,
		"localProfile": h.profiles.GetLocalProfile(ctx, principal),
	})
}

// StartSession opens an access-log session (dashboard mount).
func (h *ProfileHandler) StartSession(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)

	session, err := h.sessions.Start(c.Request.Context(), principal, c.Request.UserAgent())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to start session", err)
		return
	}
	response.Success(c, http.StatusCreated, "session started", session)
}

// EndSession closes the open access-log session, if any.
func (h *ProfileHandler) EndSession(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)

	if err := h.sessions.End(c.Request.Context(), principal); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to end session", err)
		return
	}
	response.Success(c, 0, "session ended", nil)
}

// Sessions lists the caller's closed access-log sessions.
func (h *ProfileHandler) Sessions(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	response.Success(c, 0, "sessions retrieved", h.sessions.Logs(c.Request.Context(), principal))
}
