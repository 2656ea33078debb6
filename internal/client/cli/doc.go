// Package cli provides the interactive GreenSnap command-line client.
//
// It wires configuration, the local session store, the backend API client,
// and an interactive REPL. Typical flow: restore the stored session, apply
// the navigation rules for the signed-in role, and execute user commands.
//
// Key features:
//   - Register / Login with OTP verification and password reset
//   - Browse the report feed, open a report, submit a new report
//   - Supervisor queues, status updates and resolution
//   - Worker and attendance management for supervisors
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, navigate, and runREPL for details.
package cli
