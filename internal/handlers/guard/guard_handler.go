package guard

import (
	"context"
	"sync"
	"time"

	"ead-service/internal/middleware"
	"ead-service/internal/pkg/response"
	"ead-service/internal/service/actor"
	guardsvc "ead-service/internal/service/guard"

	"github.com/gin-gonic/gin"
)

// GuardHandler exposes page resolution as an API: given the caller's
// identity and a path, it answers which page to render and where to steer.
type GuardHandler struct {
	gate    *actor.Gate
	timeout time.Duration
}

func NewGuardHandler(gate *actor.Gate, timeout time.Duration) *GuardHandler {
	return &GuardHandler{
		gate:    gate,
		timeout: timeout,
	}
}

// Resolve evaluates the guard for the caller. The three authorization
// facts are fetched concurrently; their completion order does not affect
// the decision. Facts that do not resolve within the status timeout stay
// Loading and the caller sees a checking state rather than a denial.
func (h *GuardHandler) Resolve(c *gin.Context) {
	path := c.DefaultQuery("path", "/")

	input := guardsvc.Input{
		Path:     path,
		Profile:  guardsvc.ProfileAbsent(),
		Admin:    guardsvc.FlagFalse,
		Approved: guardsvc.FlagFalse,
	}

	principal, authenticated := middleware.GetPrincipal(c)
	if authenticated {
		token := middleware.MustGetToken(c)
		input.Principal = principal

		bound, release := h.gate.Bind(c.Request.Context(), principal)
		defer release()
		ctx, cancel := context.WithTimeout(bound, h.timeout)
		defer cancel()

		input.Profile = guardsvc.ProfileLoading()
		input.Admin = guardsvc.FlagLoading
		input.Approved = guardsvc.FlagLoading

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			input.Profile = h.gate.ProfileState(ctx, token)
		}()
		go func() {
			defer wg.Done()
			input.Admin = h.gate.IsAdmin(ctx, token)
		}()
		go func() {
			defer wg.Done()
			input.Approved = h.gate.IsApproved(ctx, token)
		}()
		wg.Wait()
	}

	decision := guardsvc.Resolve(input)

	// Location correction happens after the resolve pass, never inside it.
	// The navigator is request-local: it starts at the caller's reported
	// path, so concurrent resolves share no state.
	nav := guardsvc.NewNavigator(path)
	if decision.RedirectTo != "" {
		nav.Request(decision.RedirectTo)
	}
	location, navigated := nav.Commit()

	response.Success(c, 0, "resolved", gin.H{
		"decision":  decision,
		"location":  location,
		"navigated": navigated,
	})
}
