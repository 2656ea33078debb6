// Package guard decides where the client is allowed to navigate based on
// the current session state. Evaluate is a pure function of its inputs so
// the routing rules can be tested without a running UI loop.
package guard

import (
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/greensnap-app/greensnap-cli/internal/client/session"
)

// Route groups for top-level navigation.
const (
	GroupAuth       = "(auth)"
	GroupTabs       = "(tabs)"
	GroupSupervisor = "supervisor"
)

// Well-known destinations.
var (
	RouteLogin               = []string{GroupAuth}
	RouteTabs                = []string{GroupTabs}
	RouteSupervisorDashboard = []string{GroupSupervisor, "dashboard"}
	RouteVerifyOTP           = []string{GroupAuth, "verify-otp"}
)

// Decision is the outcome of evaluating a route against the session.
// Redirect is nil when the current route is allowed to stand.
type Decision struct {
	Redirect []string
	// Params carries query-style values for the redirect target, such as
	// the email to prefill on the verification screen.
	Params map[string]string
}

// Allowed reports whether navigation may proceed unchanged.
func (d Decision) Allowed() bool { return d.Redirect == nil }

// Evaluate applies the access rules to the route described by segments.
// Rules are checked in order and the first match wins:
//
//  1. While the stored session is still being checked, do nothing.
//  2. An authenticated but unverified user is sent to OTP verification.
//  3. A fully authenticated user on an auth screen goes to their home.
//  4. An unauthenticated user on a protected screen goes to login.
//  5. A non-supervisor inside the supervisor group goes to the tabs home.
//  6. A supervisor inside the tabs group goes to the supervisor dashboard.
//
// The shared report-detail screen and the supervisor worker-management
// subtree are exempt from the home-group corrections (rules 3-6): both
// roles reach report details, and supervisors drill into worker screens
// that live outside their dashboard group.
func Evaluate(segments []string, s session.Snapshot) Decision {
	if s.IsCheckingAuth {
		return Decision{}
	}

	inAuth := inGroup(segments, GroupAuth)
	inTabs := inGroup(segments, GroupTabs)
	inSupervisor := inGroup(segments, GroupSupervisor)

	if s.Authenticated() && !s.Verified() {
		if onVerifyOTP(segments) {
			return Decision{}
		}
		d := Decision{Redirect: RouteVerifyOTP}
		if s.User != nil && s.User.Email != "" {
			d.Params = map[string]string{"email": s.User.Email}
		}
		return d
	}

	if exempt(segments, s) {
		return Decision{}
	}

	if s.Authenticated() && s.Verified() && inAuth {
		return Decision{Redirect: homeFor(s.User)}
	}

	if !s.Authenticated() && (inTabs || inSupervisor) {
		return Decision{Redirect: RouteLogin}
	}

	if s.Authenticated() && inSupervisor && !isSupervisor(s.User) {
		return Decision{Redirect: RouteTabs}
	}

	if s.Authenticated() && inTabs && isSupervisor(s.User) {
		return Decision{Redirect: RouteSupervisorDashboard}
	}

	return Decision{}
}

func inGroup(segments []string, group string) bool {
	return len(segments) > 0 && segments[0] == group
}

func onVerifyOTP(segments []string) bool {
	return len(segments) >= 2 && segments[0] == GroupAuth && segments[1] == "verify-otp"
}

// exempt lists routes both roles may occupy without correction.
func exempt(segments []string, s session.Snapshot) bool {
	if inGroup(segments, "report-details") {
		return true
	}
	// Worker management lives under the supervisor group but is not the
	// dashboard; supervisors must not be bounced out of it.
	if len(segments) >= 2 && segments[0] == GroupSupervisor && segments[1] == "workers" && isSupervisor(s.User) {
		return true
	}
	return false
}

func homeFor(u *models.User) []string {
	if isSupervisor(u) {
		return RouteSupervisorDashboard
	}
	return RouteTabs
}

func isSupervisor(u *models.User) bool {
	return u != nil && u.IsSupervisor()
}
