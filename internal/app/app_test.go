package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	apperrors "github.com/agbru/fibfizz/internal/errors"
)

// The theme is process-wide state, so these tests do not run in parallel.

func notTerminal(io.Writer) bool { return false }

func newTestApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	app, err := New(append([]string{"fibfizz"}, args...), &errBuf, WithTerminalDetector(notTerminal))
	if err != nil {
		t.Fatalf("New(%v) error = %v, stderr:\n%s", args, err, errBuf.String())
	}
	return app, &errBuf
}

func TestRun_Generate(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{
			name:       "plain",
			args:       []string{"5"},
			wantStdout: "FizzBuzz\n1\n1\nBuzzFizz\nBuzzFizz\nBuzzFizz\n",
			wantStderr: "Generating a Fibonacci sequence of length 5 for fizz-buzzifying\n",
		},
		{
			name:       "debug",
			args:       []string{"--debug", "3"},
			wantStdout: "F[0] ==> 0 ==> FizzBuzz\nF[1] ==> 1 ==> 1\nF[2] ==> 1 ==> 1\nF[3] ==> 2 ==> BuzzFizz\n",
		},
		{
			name:       "zero bound",
			args:       []string{"-q", "0"},
			wantStdout: "FizzBuzz\n",
		},
		{
			name:       "tsv",
			args:       []string{"-q", "--format=tsv", "-n", "1"},
			wantStdout: "position\tterm\tresult\n0\t0\tFizzBuzz\n1\t1\t1\n",
		},
		{
			name:       "jsonl",
			args:       []string{"-q", "--format", "jsonl", "0"},
			wantStdout: `{"position":0,"term":0,"result":"FizzBuzz","label":true}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, errBuf := newTestApp(t, tt.args...)
			var out bytes.Buffer

			if code := app.Run(t.Context(), &out); code != apperrors.ExitSuccess {
				t.Fatalf("Run() = %d, want %d; stderr:\n%s", code, apperrors.ExitSuccess, errBuf.String())
			}
			if out.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(errBuf.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", errBuf.String(), tt.wantStderr)
			}
		})
	}
}

func TestRun_QuietSuppressesBannerAndSummary(t *testing.T) {
	app, errBuf := newTestApp(t, "-q", "-s", "10")
	var out bytes.Buffer

	if code := app.Run(t.Context(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if errBuf.Len() != 0 {
		t.Errorf("stderr = %q, want empty", errBuf.String())
	}
}

func TestRun_Summary(t *testing.T) {
	app, errBuf := newTestApp(t, "-s", "5")

	if code := app.Run(t.Context(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	stderr := errBuf.String()
	for _, want := range []string{"Summary: 6 records", "BuzzFizz     3", "FizzBuzz     1", "numbers      2"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("summary missing %q:\n%s", want, stderr)
		}
	}
}

func TestRun_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.txt")
	app, errBuf := newTestApp(t, "-q", "-o", path, "5")
	var out bytes.Buffer

	if code := app.Run(t.Context(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0; stderr:\n%s", code, errBuf.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if string(got) != out.String() {
		t.Errorf("file = %q, stdout = %q; want identical", got, out.String())
	}
}

func TestRun_OutputFileUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	app, errBuf := newTestApp(t, "-q", "-o", filepath.Join(blocker, "records.txt"), "5")

	if code := app.Run(t.Context(), io.Discard); code != apperrors.ExitErrorOutput {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorOutput)
	}
	if !strings.Contains(errBuf.String(), "Error:") {
		t.Errorf("stderr = %q, want an error line", errBuf.String())
	}
}

func TestRun_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fibfizz.prom")
	app, _ := newTestApp(t, "-q", "--metrics-file", path, "5")

	if code := app.Run(t.Context(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}
	for _, want := range []string{
		`fibfizz_records_total{result="BuzzFizz"} 3`,
		`fibfizz_runs_total{status="ok"} 1`,
		"fibfizz_last_position 5",
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("metrics file missing %q:\n%s", want, got)
		}
	}
}

// brokenPipeWriter fails every write the way a closed pipe does.
type brokenPipeWriter struct{}

func (brokenPipeWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestRun_BrokenPipeExitsCleanly(t *testing.T) {
	app, errBuf := newTestApp(t, "-q", "92")

	if code := app.Run(t.Context(), brokenPipeWriter{}); code != apperrors.ExitSuccess {
		t.Errorf("Run() = %d, want 0", code)
	}
	if errBuf.Len() != 0 {
		t.Errorf("stderr = %q, want empty", errBuf.String())
	}
}

func TestRun_ContextErrors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
		wantMsg  string
	}{
		{"canceled", canceled, apperrors.ExitErrorCanceled, "canceled"},
		{"deadline", expired, apperrors.ExitErrorTimeout, "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, errBuf := newTestApp(t, "-q", "5")
			var out bytes.Buffer

			if code := app.Run(tt.ctx, &out); code != tt.wantCode {
				t.Errorf("Run() = %d, want %d", code, tt.wantCode)
			}
			if out.Len() != 0 {
				t.Errorf("stdout = %q, want no records", out.String())
			}
			if !strings.Contains(errBuf.String(), tt.wantMsg) {
				t.Errorf("stderr = %q, want it to contain %q", errBuf.String(), tt.wantMsg)
			}
		})
	}
}

func TestRun_Completion(t *testing.T) {
	app, _ := newTestApp(t, "--completion", "bash")
	var out bytes.Buffer

	if code := app.Run(t.Context(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "fibfizz") {
		t.Errorf("completion script does not mention fibfizz:\n%s", out.String())
	}
}

func TestRun_CompletionUnknownShell(t *testing.T) {
	app, errBuf := newTestApp(t, "--completion", "tcsh")

	if code := app.Run(t.Context(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "tcsh") {
		t.Errorf("stderr = %q, want the shell name", errBuf.String())
	}
}

func TestRun_Interactive(t *testing.T) {
	var errBuf bytes.Buffer
	app, err := New([]string{"fibfizz", "-i"}, &errBuf,
		WithTerminalDetector(notTerminal),
		WithInput(strings.NewReader("classify 15\nexit\n")))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var out bytes.Buffer

	if code := app.Run(t.Context(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "FizzBuzz") {
		t.Errorf("REPL output missing classification:\n%s", out.String())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"missing N", nil, apperrors.ExitErrorConfig},
		{"not an integer", []string{"abc"}, apperrors.ExitErrorConfig},
		{"negative", []string{"-n", "-1"}, apperrors.ExitErrorConfig},
		{"overflowing bound", []string{"93"}, apperrors.ExitErrorConfig},
		{"unknown format", []string{"--format", "xml", "5"}, apperrors.ExitErrorConfig},
		{"bad log level", []string{"--log-level", "loud", "5"}, apperrors.ExitErrorConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := New(append([]string{"fibfizz"}, tt.args...), &errBuf)
			if err == nil {
				t.Fatal("New() error = nil, want an error")
			}
			if got := apperrors.ExitCodeFor(err); got != tt.wantCode {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", err, got, tt.wantCode)
			}
			if !strings.Contains(errBuf.String(), "Error:") {
				t.Errorf("stderr = %q, want an error line", errBuf.String())
			}
		})
	}
}

func TestNew_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"fibfizz", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("New(--help) error = %v, want flag.ErrHelp", err)
	}
	if strings.Contains(errBuf.String(), "Error:") {
		t.Errorf("help output contains an error line:\n%s", errBuf.String())
	}
}

func TestIsHelpError(t *testing.T) {
	t.Parallel()
	if IsHelpError(errors.New("boom")) {
		t.Error("IsHelpError(plain error) = true")
	}
	if IsHelpError(nil) {
		t.Error("IsHelpError(nil) = true")
	}
}
