package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn   bool
	supervisor bool
	notices    []string

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isSupervisor() bool { return f.supervisor }
func (f *fakeExec) notice() string {
	if len(f.notices) == 0 {
		return ""
	}
	n := f.notices[0]
	f.notices = f.notices[1:]
	return n
}

func (f *fakeExec) call(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Register(context.Context) error { return f.call("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.call("login")
}
func (f *fakeExec) VerifyAccount(context.Context) error { return f.call("verify") }
func (f *fakeExec) ResendCode(context.Context) error { return f.call("resend") }
func (f *fakeExec) ForgotPassword(context.Context) error { return f.call("forgot") }
func (f *fakeExec) Feed(context.Context) error { return f.call("feed") }
func (f *fakeExec) More(context.Context) error { return f.call("more") }
func (f *fakeExec) Show(context.Context) error { return f.call("show") }
func (f *fakeExec) Report(context.Context) error { return f.call("report") }
func (f *fakeExec) Top(context.Context) error { return f.call("top") }
func (f *fakeExec) Profile(context.Context) error { return f.call("profile") }
func (f *fakeExec) Queue(context.Context) error { return f.call("queue") }
func (f *fakeExec) Review(context.Context) error { return f.call("review") }
func (f *fakeExec) Workers(context.Context) error { return f.call("workers") }
func (f *fakeExec) AddWorker(context.Context) error { return f.call("addworker") }
func (f *fakeExec) DeleteWorker(context.Context) error { return f.call("delworker") }
func (f *fakeExec) Attendance(context.Context) error { return f.call("attendance") }
func (f *fakeExec) MarkAttendance(context.Context) error { return f.call("mark") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.call("logout")
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"feed",
		"more",
		"show",
		"report",
		"top",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "feed", "more", "show", "report", "top", "logout"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_SupervisorCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"queue",
		"review",
		"workers",
		"addworker",
		"delworker",
		"attendance",
		"mark",
		"quit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true, supervisor: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"queue", "review", "workers", "addworker", "delworker", "attendance", "mark"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("calls mismatch at %d: got %v, want %v", i, exec.calls, want)
		}
	}
}

func TestRunREPL_NoticeShownBeforePrompt(t *testing.T) {
	var printed []string
	origPrint := printlnFn
	printlnFn = func(args ...any) (int, error) {
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("exit\n")
	exec := &fakeExec{notices: []string{"session expired"}}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(printed) == 0 || printed[0] != "session expired" {
		t.Fatalf("notice not shown first: %v", printed)
	}
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n   \nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_SupervisorHelpListsSharedCommands(t *testing.T) {
	origPrint := printlnFn
	var lines []string
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprint(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("help\nexit\n")
	exec := &fakeExec{loggedIn: true, supervisor: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	var help string
	for _, l := range lines {
		if strings.HasPrefix(l, "Available commands:") {
			help = l
		}
	}
	if help == "" {
		t.Fatal("no help output")
	}
	// every command the dispatcher accepts for a supervisor shows up in help
	for _, cmd := range []string{"eed", "more", "show", "report", "top", "profile", "queue", "review", "workers", "addworker", "delworker", "attendance", "mark", "logout"} {
		if !strings.Contains(help, cmd) {
			t.Fatalf("help omits %q: %s", cmd, help)
		}
	}
}
