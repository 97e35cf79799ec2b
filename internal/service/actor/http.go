package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ead-service/internal/domain/profile"
	xerrors "ead-service/internal/pkg/errors"
)

// HTTPActor talks to the backend actor over its REST surface, passing the
// caller's bearer token through unchanged.
type HTTPActor struct {
	baseURL string
	client  *http.Client
}

func NewHTTPActor(baseURL string, timeout time.Duration) *HTTPActor {
	return &HTTPActor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *HTTPActor) GetCallerUserProfile(ctx context.Context, token string) (*profile.UserProfile, error) {
	var p profile.UserProfile
	status, err := a.do(ctx, token, http.MethodGet, "/caller/profile", nil, &p)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return &p, nil
}

func (a *HTTPActor) SaveCallerUserProfile(ctx context.Context, token string, p profile.UserProfile) error {
	_, err := a.do(ctx, token, http.MethodPut, "/caller/profile", p, nil)
	return err
}

func (a *HTTPActor) IsCallerAdmin(ctx context.Context, token string) (bool, error) {
	var out struct {
		Admin bool `json:"admin"`
	}
	if _, err := a.do(ctx, token, http.MethodGet, "/caller/admin", nil, &out); err != nil {
		return false, err
	}
	return out.Admin, nil
}

func (a *HTTPActor) IsCallerApproved(ctx context.Context, token string) (bool, error) {
	var out struct {
		Approved bool `json:"approved"`
	}
	if _, err := a.do(ctx, token, http.MethodGet, "/caller/approved", nil, &out); err != nil {
		return false, err
	}
	return out.Approved, nil
}

func (a *HTTPActor) RequestApproval(ctx context.Context, token string) error {
	_, err := a.do(ctx, token, http.MethodPost, "/approvals/request", nil, nil)
	return err
}

func (a *HTTPActor) ListApprovals(ctx context.Context, token string) ([]profile.UserApprovalInfo, error) {
	var out []profile.UserApprovalInfo
	if _, err := a.do(ctx, token, http.MethodGet, "/approvals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPActor) SetApproval(ctx context.Context, token, principal string, status profile.ApprovalStatus) error {
	body := struct {
		Status profile.ApprovalStatus `json:"status"`
	}{Status: status}
	_, err := a.do(ctx, token, http.MethodPut, "/approvals/"+url.PathEscape(principal), body, nil)
	return err
}

func (a *HTTPActor) AssignUserRole(ctx context.Context, token, principal string, role profile.UserRole) error {
	body := struct {
		Role profile.UserRole `json:"role"`
	}{Role: role}
	_, err := a.do(ctx, token, http.MethodPut, "/roles/"+url.PathEscape(principal), body, nil)
	return err
}

// do performs one request. 404 is returned to the caller (absent resource),
// 401/403 map to ErrForbidden so gating code can tell privilege failures
// from transport failures, everything else non-2xx is an actor error.
func (a *HTTPActor) do(ctx context.Context, token, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build actor request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", xerrors.ErrActorUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, xerrors.ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return resp.StatusCode, fmt.Errorf("actor returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode actor response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
