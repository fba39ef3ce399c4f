package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibfizz/internal/errors"
	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
)

func TestCreateOutputFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "flat file", path: filepath.Join(tmpDir, "records.txt")},
		{name: "nested directory", path: filepath.Join(tmpDir, "nested", "dir", "records.txt")},
		{name: "path under a regular file", path: filepath.Join(tmpDir, "blocker", "records.txt"), expectError: true},
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "blocker"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f, err := CreateOutputFile(tc.path)
			if tc.expectError {
				var oerr apperrors.OutputError
				if !errors.As(err, &oerr) {
					t.Fatalf("CreateOutputFile() error = %v, want OutputError", err)
				}
				if oerr.Path != tc.path {
					t.Errorf("OutputError.Path = %q, want %q", oerr.Path, tc.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateOutputFile() error = %v", err)
			}
			f.Close()
			if _, err := os.Stat(tc.path); err != nil {
				t.Errorf("file not created: %v", err)
			}
		})
	}
}

func TestRecordWriter_HeaderOnce(t *testing.T) {
	t.Parallel()
	f, _ := NewFormatter(FormatTSV, false)
	var buf bytes.Buffer
	w := NewRecordWriter(&buf, f)
	for rec := range orchestration.Records(3) {
		if err := w.Emit(rec); err != nil {
			t.Fatalf("Emit() error = %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("RecordWriter wrote %d bytes before Flush", buf.Len())
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "position\tterm\tresult"); got != 1 {
		t.Errorf("header written %d times, want 1", got)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestRecordWriter_PropagatesWriteErrors(t *testing.T) {
	t.Parallel()
	f, _ := NewFormatter(FormatPlain, false)
	w := NewRecordWriter(failingWriter{err: os.ErrClosed}, f)
	for rec := range orchestration.Records(2) {
		if err := w.Emit(rec); err != nil {
			t.Fatalf("buffered Emit() error = %v", err)
		}
	}
	if err := w.Flush(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Flush() error = %v, want %v", err, os.ErrClosed)
	}
}

func TestDisplayBanner(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayBanner(&buf, 20)
	want := "Generating a Fibonacci sequence of length 20 for fizz-buzzifying\n"
	if buf.String() != want {
		t.Errorf("DisplayBanner() = %q, want %q", buf.String(), want)
	}
}

func TestDisplaySummary(t *testing.T) {
	t.Parallel()
	summary := orchestration.NewSummary()
	for rec := range orchestration.Records(5) {
		summary.Add(rec)
	}
	summary.Elapsed = 1500 * time.Microsecond

	var buf bytes.Buffer
	DisplaySummary(&buf, summary, false)
	out := buf.String()

	for _, want := range []string{
		"Summary: 6 records in 1ms",
		"BuzzFizz     3  " + progressBar(0.5, SummaryBarWidth),
		"FizzBuzz     1",
		"Fizz         0  " + strings.Repeat("░", SummaryBarWidth),
		"numbers      2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != len(fizzbuzz.Labels)+2 {
		t.Errorf("summary has %d lines, want %d", lines, len(fizzbuzz.Labels)+2)
	}
}

func TestDisplaySummary_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySummary(&buf, orchestration.NewSummary(), false)
	if !strings.Contains(buf.String(), "0 records") {
		t.Errorf("empty summary = %q", buf.String())
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{50 * time.Millisecond, "50ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestIsBrokenPipe(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"other", errors.New("boom"), false},
		{"closed pipe", os.ErrClosed, false},
		{"io closed pipe", wrapPipe(), true},
	}
	for _, tt := range tests {
		if got := IsBrokenPipe(tt.err); got != tt.want {
			t.Errorf("IsBrokenPipe(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
