package backend

import (
	"context"
	"encoding/json"
	"net/http"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/ports"
)

var _ ports.AuthBackend = (*AuthClient)(nil)

// AuthClient calls /api/auth. Unlike the resource clients it returns Go errors,
// because the auth service branches on error kinds.
type AuthClient struct{ c *Client }

// Login posts credentials and returns the token and raw profile.
// The profile is read from "user", falling back to "profile".
func (a *AuthClient) Login(ctx context.Context, creds domainauth.Credentials) (ports.LoginResponse, error) {
	body, err := jsonBody(creds)
	if err != nil {
		return ports.LoginResponse{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode login request")
	}
	resp, err := a.c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		if ctxErr := apperrors.FromContext(err); ctxErr != nil {
			return ports.LoginResponse{}, ctxErr
		}
		return ports.LoginResponse{}, apperrors.Transport(err)
	}
	if !resp.ok() {
		msg := resp.failureMessage()
		if resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden {
			return ports.LoginResponse{}, &apperrors.AppError{
				Code: apperrors.ErrCodeUnauthorized, Message: msg, Status: resp.status,
			}
		}
		return ports.LoginResponse{}, apperrors.Upstream(resp.status, msg)
	}

	var token string
	for _, k := range []string{"token", "access_token"} {
		if v, ok := resp.fields[k]; ok && json.Unmarshal(v, &token) == nil && token != "" {
			break
		}
	}
	if token == "" {
		return ports.LoginResponse{}, apperrors.Upstream(resp.status, "login response did not include a token")
	}

	var profile map[string]any
	for _, k := range []string{"user", "profile"} {
		if v, ok := resp.fields[k]; ok && json.Unmarshal(v, &profile) == nil && profile != nil {
			break
		}
	}
	return ports.LoginResponse{Token: token, Profile: profile}, nil
}

// Logout invalidates token on the backend.
func (a *AuthClient) Logout(ctx context.Context, token string) error {
	res := call[struct{}](ctx, a.c, request{method: http.MethodPost, path: "/api/auth/logout", token: token})
	return Err(res)
}
