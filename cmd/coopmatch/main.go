// Command coopmatch scrapes a co-op job portal, scores postings against a
// résumé, and drives cover-letter generation, upload and application.
package main

import (
	"fmt"
	"os"

	"github.com/oclaw/coopmatch/cmd/coopmatch/cmd"
	"github.com/oclaw/coopmatch/internal/errs"
)

// Exit codes distinguish why a run failed: scripts driving coopmatch (cron
// jobs, CI) can retry a cancellation differently from a rejected login.
const (
	exitOK         = 0
	exitGeneral    = 1
	exitAuthFailed = 2
	exitCancelled  = 130 // conventional SIGINT exit code
)

func main() {
	err := cmd.Execute()
	if err == nil {
		os.Exit(exitOK)
	}

	fmt.Fprintln(os.Stderr, err)

	kind, ok := errs.KindOf(err)
	switch {
	case ok && kind == errs.KindAuth:
		os.Exit(exitAuthFailed)
	case ok && kind == errs.KindCancelled:
		os.Exit(exitCancelled)
	default:
		os.Exit(exitGeneral)
	}
}
