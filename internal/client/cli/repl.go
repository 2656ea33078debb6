package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isSupervisor() bool
	notice() string

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	VerifyAccount(ctx context.Context) error
	ResendCode(ctx context.Context) error
	ForgotPassword(ctx context.Context) error

	Feed(ctx context.Context) error
	More(ctx context.Context) error
	Show(ctx context.Context) error
	Report(ctx context.Context) error
	Top(ctx context.Context) error
	Profile(ctx context.Context) error

	Queue(ctx context.Context) error
	Review(ctx context.Context) error
	Workers(ctx context.Context) error
	AddWorker(ctx context.Context) error
	DeleteWorker(ctx context.Context) error
	Attendance(ctx context.Context) error
	MarkAttendance(ctx context.Context) error

	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the GreenSnap CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - verify         — enter the emailed OTP code
//	  - resend         — request a fresh OTP code
//	  - forgot         — reset a forgotten password
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - feed | f       — browse the report feed
//	  - more           — next feed page
//	  - show           — show a single report (interactive ID prompt)
//	  - report         — submit a new waste report
//	  - top            — top reporters leaderboard
//	  - profile        — current account details
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
//	Supervisors additionally:
//	  - queue          — list reports by status
//	  - review         — update or resolve a report
//	  - workers        — list workers
//	  - addworker      — register a worker
//	  - delworker      — remove a worker
//	  - attendance     — attendance for a date or worker
//	  - mark           — mark a worker's attendance
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if n := a.notice(); n != "" {
			printlnFn(n)
		}
		printlnFn(fmt.Sprintf("gs> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn() && a.isSupervisor():
				printlnFn("Available commands: (f)eed, more, show, report, top, profile, queue, review, workers, addworker, delworker, attendance, mark, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: (f)eed, more, show, report, top, profile, logout, exit")
			default:
				printlnFn("Available commands: register, login, verify, resend, forgot, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.VerifyAccount(ctx)

		case "resend":
			_ = a.ResendCode(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "f", "feed":
			_ = a.Feed(ctx)

		case "more":
			_ = a.More(ctx)

		case "show":
			_ = a.Show(ctx)

		case "report":
			_ = a.Report(ctx)

		case "top":
			_ = a.Top(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "queue":
			_ = a.Queue(ctx)

		case "review":
			_ = a.Review(ctx)

		case "workers":
			_ = a.Workers(ctx)

		case "addworker":
			_ = a.AddWorker(ctx)

		case "delworker":
			_ = a.DeleteWorker(ctx)

		case "attendance":
			_ = a.Attendance(ctx)

		case "mark":
			_ = a.MarkAttendance(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
