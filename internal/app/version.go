package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/agbru/fibfizz/internal/app.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// versionFlags are checked before flag parsing so that --version works
// without a position bound.
var versionFlags = []string{"--version", "-version", "-V"}

// HasVersionFlag reports whether args request the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if slices.Contains(versionFlags, arg) {
			return true
		}
	}
	return false
}

// PrintVersion writes the version line to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fibfizz %s (commit %s, built %s) %s %s/%s\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
