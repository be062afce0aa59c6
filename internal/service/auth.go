package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend  ports.AuthBackend // Required
	Sessions *SessionStore     // Required
	Logger   *slog.Logger      // Optional

	// LogoutTimeout bounds the remote logout call; defaults to DefaultLogoutTimeout.
	LogoutTimeout time.Duration
}

// DefaultLogoutTimeout bounds the remote logout call when none is configured.
const DefaultLogoutTimeout = 5 * time.Second

// AuthService performs login/logout against the backend and answers role questions
// about the principal of a scope.
type AuthService struct {
	backend  ports.AuthBackend
	sessions *SessionStore
	validate *validator.Validate
	logger   *slog.Logger

	logoutTimeout time.Duration
}

// NewAuthService constructs a new AuthService. It panics when a required dependency is nil.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Backend == nil {
		panic("AuthService requires a Backend")
	}
	if opts.Sessions == nil {
		panic("AuthService requires a SessionStore")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logoutTimeout := opts.LogoutTimeout
	if logoutTimeout <= 0 {
		logoutTimeout = DefaultLogoutTimeout
	}
	return &AuthService{
		backend:       opts.Backend,
		sessions:      opts.Sessions,
		validate:      newValidator(),
		logger:        logger.With("component", "auth_service"),
		logoutTimeout: logoutTimeout,
	}
}

// LoginResult is the session established by a successful login.
type LoginResult struct {
	Session domainauth.Session
}

// Login authenticates against the backend and persists the session under scope.
// Every failure is an *apperrors.AppError.
func (s *AuthService) Login(ctx context.Context, scope string, creds domainauth.Credentials) (*LoginResult, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := s.validateCredentials(creds); err != nil {
		return nil, err
	}

	resp, err := s.backend.Login(ctx, creds)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Transport(err)
	}

	profile := s.sessions.normalizer.Normalize(resp.Profile)
	if err := s.sessions.Save(ctx, scope, resp.Token, profile); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorage, "Could not save your session. Please try again.")
	}

	s.logger.InfoContext(ctx, "login succeeded", "scope", scope, "role", profile.Role())
	return &LoginResult{Session: domainauth.Session{Token: resp.Token, Profile: profile}}, nil
}

func (s *AuthService) validateCredentials(creds domainauth.Credentials) error {
	return validationError(s.validate.Struct(creds))
}

// Logout tells the backend to drop the token, then clears the local session regardless
// of the remote outcome. The remote call ends at logoutTimeout or when ctx does, and the
// local session is read and cleared even when ctx is already done. Only a failure to clear
// local storage is returned.
func (s *AuthService) Logout(ctx context.Context, scope string) error {
	local := context.WithoutCancel(ctx)

	tok, ok, err := s.sessions.Token(local, scope)
	if err != nil {
		s.logger.WarnContext(ctx, "read token for logout", "scope", scope, "error", err)
	}
	if ok && tok != "" {
		remoteCtx, cancel := context.WithTimeout(ctx, s.logoutTimeout)
		remoteErr := s.backend.Logout(remoteCtx, tok)
		cancel()
		if remoteErr != nil {
			s.logger.WarnContext(ctx, "remote logout failed; clearing local session anyway",
				"scope", scope, "error", remoteErr)
		}
	}
	return s.sessions.Clear(local, scope)
}

// IsAuthenticated reports whether the scope holds a token.
func (s *AuthService) IsAuthenticated(ctx context.Context, scope string) bool {
	return s.sessions.IsAuthenticated(ctx, scope)
}

// Token returns the scope's bearer token or "".
func (s *AuthService) Token(ctx context.Context, scope string) string {
	tok, _, err := s.sessions.Token(ctx, scope)
	if err != nil {
		s.logger.WarnContext(ctx, "read token", "scope", scope, "error", err)
		return ""
	}
	return tok
}

// CurrentProfile returns the scope's profile, nil when there is none.
func (s *AuthService) CurrentProfile(ctx context.Context, scope string) (*domainauth.Profile, error) {
	return s.sessions.Profile(ctx, scope)
}

// AuthState is the principal-level state of a scope.
type AuthState struct {
	State   domainauth.State
	Profile *domainauth.Profile
}

// Authenticated reports whether the state is StateAuthenticated.
func (a AuthState) Authenticated() bool { return a.State == domainauth.StateAuthenticated }

// State resolves the scope's state. A token without a readable profile is unauthenticated.
func (s *AuthService) State(ctx context.Context, scope string) AuthState {
	if !s.sessions.IsAuthenticated(ctx, scope) {
		return AuthState{State: domainauth.StateUnauthenticated}
	}
	p, err := s.sessions.Profile(ctx, scope)
	if err != nil {
		s.logger.WarnContext(ctx, "read profile", "scope", scope, "error", err)
		return AuthState{State: domainauth.StateUnauthenticated}
	}
	if p == nil {
		return AuthState{State: domainauth.StateUnauthenticated}
	}
	return AuthState{State: domainauth.StateAuthenticated, Profile: p}
}

// HasRole reports whether the scope's principal holds required.
func (s *AuthService) HasRole(ctx context.Context, scope, required string) bool {
	p, err := s.sessions.Profile(ctx, scope)
	if err != nil {
		s.logger.WarnContext(ctx, "read profile for role check", "scope", scope, "error", err)
		return false
	}
	return ProfileHasRole(p, required)
}

// ProfileHasRole compares required against every role candidate of p, ignoring case.
// For the admin role only, a true admin flag also counts as a match.
func ProfileHasRole(p *domainauth.Profile, required string) bool {
	if p == nil {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(required))
	if want == "" {
		return false
	}
	for _, role := range p.Roles {
		if role == want {
			return true
		}
	}
	return want == domainauth.RoleAdmin.String() && p.IsAdminFlagged()
}
