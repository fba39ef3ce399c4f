package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
	"github.com/agbru/fibfizz/internal/ui"
)

// render runs the driver for 0..n through the named format.
func render(t *testing.T, format string, n int) string {
	t.Helper()
	f, err := NewFormatter(format, false)
	if err != nil {
		t.Fatalf("NewFormatter(%q) error = %v", format, err)
	}
	var buf bytes.Buffer
	w := NewRecordWriter(&buf, f)
	if _, err := orchestration.NewDriver().Run(context.Background(), n, w); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	return buf.String()
}

func TestFormats(t *testing.T) {
	t.Parallel()
	want := []string{FormatDebug, FormatJSONL, FormatPlain, FormatTSV}
	got := Formats()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
	if _, err := NewFormatter("xml", false); err == nil {
		t.Error("NewFormatter(xml) succeeded, want error")
	}
}

func TestRecordFormats(t *testing.T) {
	t.Parallel()
	tests := []struct {
		format string
		n      int
		want   string
	}{
		{
			format: FormatPlain,
			n:      5,
			want:   "FizzBuzz\n1\n1\nBuzzFizz\nBuzzFizz\nBuzzFizz\n",
		},
		{
			format: FormatDebug,
			n:      5,
			want: "F[0] ==> 0 ==> FizzBuzz\n" +
				"F[1] ==> 1 ==> 1\n" +
				"F[2] ==> 1 ==> 1\n" +
				"F[3] ==> 2 ==> BuzzFizz\n" +
				"F[4] ==> 3 ==> BuzzFizz\n" +
				"F[5] ==> 5 ==> BuzzFizz\n",
		},
		{
			format: FormatTSV,
			n:      2,
			want:   "position\tterm\tresult\n0\t0\tFizzBuzz\n1\t1\t1\n2\t1\t1\n",
		},
		{
			format: FormatJSONL,
			n:      1,
			want: `{"position":0,"term":0,"result":"FizzBuzz","label":true}` + "\n" +
				`{"position":1,"term":1,"result":1,"label":false}` + "\n",
		},
		{
			format: FormatPlain,
			n:      0,
			want:   "FizzBuzz\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			if got := render(t, tt.format, tt.n); got != tt.want {
				t.Errorf("%s output for n=%d:\n%q\nwant:\n%q", tt.format, tt.n, got, tt.want)
			}
		})
	}
}

func TestRecordFormats_LineCount(t *testing.T) {
	t.Parallel()
	for _, format := range []string{FormatPlain, FormatDebug, FormatJSONL} {
		out := render(t, format, 20)
		if lines := strings.Count(out, "\n"); lines != 21 {
			t.Errorf("%s: %d lines for n=20, want 21", format, lines)
		}
	}
}

func TestJSONLRecordsDecode(t *testing.T) {
	t.Parallel()
	out := render(t, FormatJSONL, 12)
	for i, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec struct {
			Position int             `json:"position"`
			Term     int64           `json:"term"`
			Result   json.RawMessage `json:"result"`
			Label    bool            `json:"label"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line %d %q: %v", i, line, err)
		}
		if rec.Position != i {
			t.Errorf("line %d has position %d", i, rec.Position)
		}
		isString := len(rec.Result) > 0 && rec.Result[0] == '"'
		if isString != rec.Label {
			t.Errorf("line %d: label=%v but result %s", i, rec.Label, rec.Result)
		}
	}
}

func TestFormatDebugRecord(t *testing.T) {
	t.Parallel()
	rec := orchestration.Record{Position: 10, Term: 55, Result: fizzbuzz.Classify(55)}
	if got, want := FormatDebugRecord(rec), "F[10] ==> 55 ==> Buzz"; got != want {
		t.Errorf("FormatDebugRecord() = %q, want %q", got, want)
	}
	if got, want := FormatPlainRecord(rec), "Buzz"; got != want {
		t.Errorf("FormatPlainRecord() = %q, want %q", got, want)
	}
}

// TestFormatResult_Colored swaps the global theme and must not run in
// parallel.
func TestFormatResult_Colored(t *testing.T) {
	saved := ui.GetCurrentTheme()
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })
	ui.SetCurrentTheme(ui.DarkTheme)

	tests := []struct {
		result fizzbuzz.Result
		want   string
	}{
		{fizzbuzz.LabelResult(fizzbuzz.LabelPrime), ui.DarkTheme.Primary + "BuzzFizz" + ui.DarkTheme.Reset},
		{fizzbuzz.LabelResult(fizzbuzz.LabelBoth), ui.DarkTheme.Warning + "FizzBuzz" + ui.DarkTheme.Reset},
		{fizzbuzz.LabelResult(fizzbuzz.LabelThree), ui.DarkTheme.Success + "Fizz" + ui.DarkTheme.Reset},
		{fizzbuzz.LabelResult(fizzbuzz.LabelFive), ui.DarkTheme.Info + "Buzz" + ui.DarkTheme.Reset},
		{fizzbuzz.NumberResult(8), "8"},
	}
	for _, tt := range tests {
		if got := FormatResult(tt.result, true); got != tt.want {
			t.Errorf("FormatResult(%v, true) = %q, want %q", tt.result, got, tt.want)
		}
		if got := FormatResult(tt.result, false); got != tt.result.String() {
			t.Errorf("FormatResult(%v, false) = %q, want plain", tt.result, got)
		}
	}
}
