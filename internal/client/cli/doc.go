// Package cli provides the interactive Aure command-line client.
//
// It wires configuration, the local sqlite mirror, the HTTP API client, the
// session manager, and an interactive REPL. Typical flow: sign in (or run
// the onboarding wizard), then browse jobs, payments, agencies, and tax
// documents; every data screen is wrapped in an authentication guard.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and Guard for details.
package cli
