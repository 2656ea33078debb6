package cli

import (
	"context"
	"strings"

	"github.com/greensnap-app/greensnap-cli/internal/client/guard"
)

// maxRedirects bounds the navigation loop. The rules converge in at most two
// hops; the bound keeps a future rule mistake from spinning forever.
const maxRedirects = 8

// navigate moves the app to segments, applying the access rules until they
// stop redirecting. The final position is stored in a.route.
func (a *App) navigate(segments []string) {
	for i := 0; i < maxRedirects; i++ {
		d := guard.Evaluate(segments, a.session.Snapshot())
		if d.Allowed() {
			a.route = segments
			return
		}
		if email := d.Params["email"]; email != "" {
			a.pendingEmail = email
		}
		a.logger.Debug(context.Background(), "redirect",
			"from", strings.Join(segments, "/"),
			"to", strings.Join(d.Redirect, "/"))
		segments = d.Redirect
	}
	a.logger.Warn(context.Background(), "navigation did not converge, falling back to login")
	a.route = guard.RouteLogin
}

// home routes to the signed-in user's start screen, or to login when there
// is no session. The guard corrects the group by role.
func (a *App) home() {
	if a.isLoggedIn() {
		a.navigate(guard.RouteTabs)
		return
	}
	a.navigate(guard.RouteLogin)
}
