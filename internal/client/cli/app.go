package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/greensnap-app/greensnap-cli/internal/client/api"
	"github.com/greensnap-app/greensnap-cli/internal/client/config"
	"github.com/greensnap-app/greensnap-cli/internal/client/guard"
	"github.com/greensnap-app/greensnap-cli/internal/client/session"
	"github.com/greensnap-app/greensnap-cli/internal/logging"
)

// App is the interactive client. All collaborators are injected so tests can
// substitute fakes; App itself owns only terminal I/O and the current route.
type App struct {
	config  *config.Config
	session *session.Service
	api     api.Client
	logger  logging.Logger
	reader  *bufio.Reader

	// route is the navigation position, kept valid by navigate.
	route []string
	// feedPage is the last page shown by Feed; More continues from it.
	feedPage int
	// pendingEmail prefills the OTP prompt after register or a guard
	// redirect to the verification screen.
	pendingEmail string
}

// NewApp wires an App from its collaborators. A nil logger is replaced with
// a no-op one.
func NewApp(c *config.Config, sess *session.Service, apiClient api.Client, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		config:  c,
		session: sess,
		api:     apiClient,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		route:   guard.RouteLogin,
	}
}

// Run restores the stored session, routes to the appropriate start screen
// and enters the REPL. It blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	fmt.Println("GreenSnap CLI (type 'help' for commands)")

	a.session.CheckAuth(ctx)
	a.navigate(a.route)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) isSupervisor() bool {
	s := a.session.Snapshot()
	return s.User != nil && s.User.IsSupervisor()
}

// status renders the prompt suffix: the signed-in user and current route.
func (a *App) status() string {
	s := a.session.Snapshot()
	out := ""
	if s.User != nil && s.User.Username != "" {
		out = s.User.Username + " "
	}
	out += "/" + strings.Join(a.route, "/")
	return out
}

// reportError shows a request error to the user. A 401 means the server
// rejected the token, so the session is dropped, the app returns to login and
// the expiry notice appears before the next prompt.
func (a *App) reportError(ctx context.Context, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		a.session.Logout(ctx, true)
		a.feedPage = 0
		a.navigate(guard.RouteLogin)
		return
	}
	fmt.Println(err.Error())
}

// notice returns a one-shot message to show before the next prompt, or "".
// An expired session is reported exactly once and then acknowledged.
func (a *App) notice() string {
	if a.session.Snapshot().SessionExpired {
		a.session.AckSessionExpired()
		return "Your session has expired. Please log in again."
	}
	return ""
}
