package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/guard"
	"github.com/greensnap-app/greensnap-cli/internal/common"
)

// minPasswordLen mirrors the backend's registration rule so obviously short
// passwords fail before a round trip.
const minPasswordLen = 6

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account.
// On success the email is remembered for the follow-up OTP verification and
// the user is told to check their inbox. No session is established here.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) < minPasswordLen {
		fmt.Printf("Password must be at least %d characters\n", minPasswordLen)
		return nil
	}

	res := a.session.Register(ctx, username, email, string(password))
	if !res.Success {
		a.reportAuthError(res.Err)
		return res.Err
	}

	a.pendingEmail = res.Email
	fmt.Println("Account created. Check your email for the verification code, then run 'verify'.")
	a.navigate(guard.RouteVerifyOTP)
	return nil
}

// Login prompts for credentials and tries to authenticate.
//
// An account that exists but has not been verified yet is routed to the OTP
// screen instead of failing. On success the route moves to the role's home
// screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, email, string(password))
	switch {
	case res.RequiresVerification:
		a.pendingEmail = res.Email
		fmt.Println("Your account is not verified yet. Check your email and run 'verify'.")
		a.navigate(guard.RouteVerifyOTP)
	case res.Success:
		fmt.Printf("Welcome back, %s!\n", res.User.Username)
		a.home()
	default:
		a.reportAuthError(res.Err)
		return res.Err
	}
	return nil
}

// VerifyAccount submits the emailed OTP code. The email defaults to the one
// remembered from register or login.
func (a *App) VerifyAccount(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	res := a.session.VerifyOTP(ctx, email, code)
	if !res.Success {
		a.reportAuthError(res.Err)
		return res.Err
	}

	a.pendingEmail = ""
	fmt.Println("Account verified. You can log in now.")
	a.navigate(guard.RouteLogin)
	return nil
}

// ResendCode requests a fresh verification OTP.
func (a *App) ResendCode(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}

	res := a.session.ResendOTP(ctx, email)
	if !res.Success {
		a.reportAuthError(res.Err)
		return res.Err
	}

	fmt.Println("A new code is on its way.")
	return nil
}

// ForgotPassword walks the three-step reset flow: request an OTP, verify it,
// then set the new password.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if res := a.session.ForgotPassword(ctx, email); !res.Success {
		a.reportAuthError(res.Err)
		return res.Err
	}
	fmt.Println("Check your email for the reset code.")

	otp, err := getSimpleText(a.reader, "Enter reset code", os.Stdout)
	if err != nil {
		return err
	}
	if res := a.session.VerifyResetOTP(ctx, email, otp); !res.Success {
		a.reportAuthError(res.Err)
		return res.Err
	}

	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) < minPasswordLen {
		fmt.Printf("Password must be at least %d characters\n", minPasswordLen)
		return nil
	}

	if res := a.session.ResetPassword(ctx, email, string(password)); !res.Success {
		a.reportAuthError(res.Err)
		return res.Err
	}

	fmt.Println("Password updated. Log in with your new password.")
	return nil
}

// Logout ends the session on the server (best effort) and locally, then
// returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx, false)
	a.feedPage = 0
	fmt.Println("Logged out.")
	a.navigate(guard.RouteLogin)
	return nil
}

// promptEmail asks for an email, defaulting to the one remembered from a
// previous step when the user just presses Enter.
func (a *App) promptEmail() (string, error) {
	prompt := "Enter email"
	if a.pendingEmail != "" {
		prompt = fmt.Sprintf("Enter email (default %s)", a.pendingEmail)
	}
	email, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if email == "" {
		email = a.pendingEmail
	}
	return email, nil
}

// reportAuthError maps a session error to a short human message.
func (a *App) reportAuthError(err error) {
	if err == nil {
		return
	}
	switch api.Classify(err) {
	case api.KindNoAccount:
		fmt.Println("No account found for that email. Run 'register' to create one.")
	case api.KindUnverified:
		fmt.Println("Your account is not verified yet. Run 'verify'.")
	case api.KindBadPassword:
		fmt.Println("Incorrect password. Run 'forgot' if you need to reset it.")
	case api.KindCooldown:
		fmt.Println("Too many codes requested. Wait a bit before trying again.")
	default:
		fmt.Println(err.Error())
	}
}
