package session

import (
	"context"
	"fmt"
	"time"

	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/credstore"
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/greensnap-app/greensnap-cli/internal/client/token"
	"github.com/greensnap-app/greensnap-cli/internal/logging"
)

// Service is the auth state container. Construct one per process and inject
// it; there is no package-level singleton.
type Service struct {
	api    api.Client
	store  credstore.Store
	logger logging.Logger
	now    func() time.Time

	user           *models.User
	token          string
	isLoading      bool
	isCheckingAuth bool
	sessionExpired bool
}

func NewService(apiClient api.Client, store credstore.Store, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		api:    apiClient,
		store:  store,
		logger: logger,
		now:    time.Now,
		// the app starts in the restoring state until CheckAuth runs
		isCheckingAuth: true,
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	snap := Snapshot{
		Token:          s.token,
		IsLoading:      s.isLoading,
		IsCheckingAuth: s.isCheckingAuth,
		SessionExpired: s.sessionExpired,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// AckSessionExpired clears the expiry notice after the UI has shown it once.
func (s *Service) AckSessionExpired() {
	s.sessionExpired = false
}

// Register creates an account. It does not establish a session; the caller
// routes to OTP verification with the returned email.
func (s *Service) Register(ctx context.Context, username, email, password string) RegisterResult {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if _, err := s.api.Register(ctx, username, email, password); err != nil {
		return RegisterResult{Err: err}
	}
	return RegisterResult{Success: true, Email: email}
}

// VerifyOTP confirms the emailed code. The user must log in afterwards; no
// session is created here.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) Result {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if err := s.api.VerifyOTP(ctx, email, code); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}

func (s *Service) ResendOTP(ctx context.Context, email string) Result {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if err := s.api.ResendOTP(ctx, email); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}

// Login authenticates and, when the account is verified, persists and adopts
// the session. An unverified account is reported via RequiresVerification
// and leaves both store and memory untouched.
func (s *Service) Login(ctx context.Context, email, password string) LoginResult {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return LoginResult{Err: err}
	}

	claims, err := token.Decode(resp.Token)
	if err != nil {
		return LoginResult{Err: fmt.Errorf("decode issued token: %w", err)}
	}

	if !claims.Verified {
		return LoginResult{RequiresVerification: true, Email: email}
	}

	user := resp.User
	if user == nil {
		user = &models.User{ID: claims.UserID, Email: email}
	}
	applyClaims(user, claims)

	// store first; memory may lag behind storage but never lead it
	if err := s.store.Save(ctx, resp.Token, user); err != nil {
		return LoginResult{Err: fmt.Errorf("persist session: %w", err)}
	}

	s.user = user
	s.token = resp.Token
	s.sessionExpired = false
	s.api.SetToken(resp.Token)

	s.logger.Info(ctx, "logged in", "email", user.Email, "role", user.Role)
	return LoginResult{Success: true, User: user}
}

// CheckAuth restores the session from the store on startup. It runs exactly
// once per process; IsCheckingAuth goes false in every branch.
func (s *Service) CheckAuth(ctx context.Context) {
	defer func() { s.isCheckingAuth = false }()

	tok, user, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "auth check failed", "error", err)
		return
	}
	if tok == "" || user == nil {
		return
	}

	if token.IsExpired(tok, s.now()) {
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Warn(ctx, "clearing expired credentials failed", "error", err)
		}
		s.sessionExpired = true
		s.logger.Info(ctx, "stored session expired")
		return
	}

	// refresh the verification flag from the token; the persisted user
	// record may predate OTP verification
	claims, err := token.Decode(tok)
	if err != nil {
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Warn(ctx, "clearing unreadable credentials failed", "error", err)
		}
		s.sessionExpired = true
		return
	}
	applyClaims(user, claims)

	s.user = user
	s.token = tok
	s.api.SetToken(tok)
	s.logger.Info(ctx, "session restored", "email", user.Email)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) Result {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}

func (s *Service) VerifyResetOTP(ctx context.Context, email, otp string) Result {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if err := s.api.VerifyResetOTP(ctx, email, otp); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}

func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) Result {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if err := s.api.ResetPassword(ctx, email, newPassword); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}

func (s *Service) ResendResetOTP(ctx context.Context, email string) Result {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if err := s.api.ResendResetOTP(ctx, email); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}

// Logout invalidates the token server-side on a best-effort basis, then
// unconditionally clears the store and memory. expired distinguishes an
// expiry-driven logout from a user-initiated one.
func (s *Service) Logout(ctx context.Context, expired bool) {
	s.isLoading = true
	defer func() { s.isLoading = false }()

	if s.token != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.Warn(ctx, "server-side logout failed", "error", err)
		}
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "clearing stored credentials failed", "error", err)
	}

	s.user = nil
	s.token = ""
	s.sessionExpired = expired
	s.api.ClearToken()
	s.logger.Info(ctx, "logged out", "expired", expired)
}

// applyClaims folds live token claims into the user record: the verification
// flag always wins, and a missing role defaults to the ordinary reporter.
func applyClaims(user *models.User, claims *token.Claims) {
	user.Verified = claims.Verified
	if user.Role == "" {
		if claims.Role != "" {
			user.Role = models.Role(claims.Role)
		} else {
			user.Role = models.RoleUser
		}
	}
}
