package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
)

func TestRegister_RoutesToVerification(t *testing.T) {
	a := newTestApp(&fakeClient{}, &fakeStore{})
	a.session.CheckAuth(context.Background())

	queueInputs(t, []string{"alice", "alice@example.org"}, []byte("secret1"))
	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}

	if a.pendingEmail != "alice@example.org" {
		t.Fatalf("pendingEmail = %q", a.pendingEmail)
	}
	if got := strings.Join(a.route, "/"); got != "(auth)/verify-otp" {
		t.Fatalf("route = %q, want (auth)/verify-otp", got)
	}
}

func TestRegister_ShortPasswordRejectedLocally(t *testing.T) {
	fc := &fakeClient{registerErr: errors.New("should not be called")}
	a := newTestApp(fc, &fakeStore{})
	a.session.CheckAuth(context.Background())

	queueInputs(t, []string{"alice", "alice@example.org"}, []byte("abc"))
	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if a.pendingEmail != "" {
		t.Fatalf("short password must not reach the server")
	}
}

func TestLogin_VerifiedLandsOnHome(t *testing.T) {
	fc := &fakeClient{
		loginResp: &api.AuthResponse{
			User:  &models.User{ID: "u1", Username: "alice", Email: "alice@example.org", Verified: true},
			Token: verifiedToken(t, models.RoleUser),
		},
	}
	a := newTestApp(fc, &fakeStore{})
	a.session.CheckAuth(context.Background())

	queueInputs(t, []string{"alice@example.org"}, []byte("secret1"))
	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}

	if !a.isLoggedIn() {
		t.Fatal("expected an established session")
	}
	if got := strings.Join(a.route, "/"); got != "(tabs)" {
		t.Fatalf("route = %q, want (tabs)", got)
	}
	if fc.token == "" {
		t.Fatal("bearer token not set on the api client")
	}
}

func TestLogin_BadPasswordReported(t *testing.T) {
	fc := &fakeClient{loginErr: &api.APIError{Status: 400, Message: "Incorrect password"}}
	a := newTestApp(fc, &fakeStore{})
	a.session.CheckAuth(context.Background())

	queueInputs(t, []string{"alice@example.org"}, []byte("secret1"))
	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected the login error to propagate")
	}
	if a.isLoggedIn() {
		t.Fatal("session must stay empty after a rejected login")
	}
}

func TestVerifyAccount_UsesPendingEmail(t *testing.T) {
	a := newTestApp(&fakeClient{}, &fakeStore{})
	a.session.CheckAuth(context.Background())
	a.pendingEmail = "alice@example.org"

	// empty email input falls back to the pending one
	queueInputs(t, []string{"", "123456"}, nil)
	if err := a.VerifyAccount(context.Background()); err != nil {
		t.Fatalf("VerifyAccount err: %v", err)
	}

	if a.pendingEmail != "" {
		t.Fatal("pendingEmail should be cleared after verification")
	}
	if got := strings.Join(a.route, "/"); got != "(auth)" {
		t.Fatalf("route = %q, want (auth)", got)
	}
}

func TestLogout_ClearsSessionAndRoutesToLogin(t *testing.T) {
	fc := &fakeClient{}
	fs := &fakeStore{
		token: verifiedToken(t, models.RoleUser),
		user:  &models.User{ID: "u1", Email: "alice@example.org", Role: models.RoleUser},
	}
	a := newTestApp(fc, fs)
	a.session.CheckAuth(context.Background())
	if !a.isLoggedIn() {
		t.Fatal("precondition: restored session")
	}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}

	if a.isLoggedIn() {
		t.Fatal("session still present")
	}
	if fc.logoutCalls != 1 {
		t.Fatalf("server logout calls = %d", fc.logoutCalls)
	}
	if fs.token != "" {
		t.Fatal("stored credentials not cleared")
	}
	if got := strings.Join(a.route, "/"); got != "(auth)" {
		t.Fatalf("route = %q, want (auth)", got)
	}
}
