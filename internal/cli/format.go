package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
	"github.com/agbru/fibfizz/internal/ui"
)

// Output format names.
const (
	FormatPlain = "plain"
	FormatDebug = "debug"
	FormatJSONL = "jsonl"
	FormatTSV   = "tsv"
)

// RecordFormatter renders records, one line each.
type RecordFormatter interface {
	// Header writes whatever precedes the first record. Most formats write
	// nothing.
	Header(w io.Writer) error
	// Format writes one record followed by a newline.
	Format(w io.Writer, rec orchestration.Record) error
}

// formatters maps a format name to its constructor. The colored argument
// is ignored by machine-readable formats.
var formatters = map[string]func(colored bool) RecordFormatter{
	FormatPlain: func(colored bool) RecordFormatter { return plainFormatter{colored: colored} },
	FormatDebug: func(colored bool) RecordFormatter { return debugFormatter{colored: colored} },
	FormatJSONL: func(bool) RecordFormatter { return jsonlFormatter{} },
	FormatTSV:   func(bool) RecordFormatter { return tsvFormatter{} },
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, colored bool) (RecordFormatter, error) {
	ctor, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (no formatter registered)", name)
	}
	return ctor(colored), nil
}

// LabelColor returns the escape sequence used for a label in the active
// theme.
func LabelColor(l fizzbuzz.Label) string {
	switch l {
	case fizzbuzz.LabelPrime:
		return ui.ColorMagenta()
	case fizzbuzz.LabelBoth:
		return ui.ColorYellow()
	case fizzbuzz.LabelThree:
		return ui.ColorGreen()
	case fizzbuzz.LabelFive:
		return ui.ColorCyan()
	default:
		return ""
	}
}

// FormatResult renders a classification, colored when requested and the
// result is a label.
func FormatResult(r fizzbuzz.Result, colored bool) string {
	if colored && r.IsLabel() {
		return ui.Paint(LabelColor(r.Label()), r.String())
	}
	return r.String()
}

// FormatPlainRecord renders the result alone: "FizzBuzz", "1", ...
func FormatPlainRecord(rec orchestration.Record) string {
	return rec.Result.String()
}

// FormatDebugRecord renders "F[i] ==> term ==> result".
func FormatDebugRecord(rec orchestration.Record) string {
	return formatDebug(rec, false)
}

func formatDebug(rec orchestration.Record, colored bool) string {
	return fmt.Sprintf("F[%d] ==> %d ==> %s", rec.Position, rec.Term, FormatResult(rec.Result, colored))
}

type plainFormatter struct{ colored bool }

func (plainFormatter) Header(io.Writer) error { return nil }

func (f plainFormatter) Format(w io.Writer, rec orchestration.Record) error {
	_, err := fmt.Fprintln(w, FormatResult(rec.Result, f.colored))
	return err
}

type debugFormatter struct{ colored bool }

func (debugFormatter) Header(io.Writer) error { return nil }

func (f debugFormatter) Format(w io.Writer, rec orchestration.Record) error {
	_, err := fmt.Fprintln(w, formatDebug(rec, f.colored))
	return err
}

// jsonRecord is the JSON Lines schema.
type jsonRecord struct {
	Position int             `json:"position"`
	Term     int64           `json:"term"`
	Result   fizzbuzz.Result `json:"result"`
	Label    bool            `json:"label"`
}

type jsonlFormatter struct{}

func (jsonlFormatter) Header(io.Writer) error { return nil }

func (jsonlFormatter) Format(w io.Writer, rec orchestration.Record) error {
	return json.NewEncoder(w).Encode(jsonRecord{
		Position: rec.Position,
		Term:     rec.Term,
		Result:   rec.Result,
		Label:    rec.Result.IsLabel(),
	})
}

type tsvFormatter struct{}

func (tsvFormatter) Header(w io.Writer) error {
	_, err := io.WriteString(w, "position\tterm\tresult\n")
	return err
}

func (tsvFormatter) Format(w io.Writer, rec orchestration.Record) error {
	_, err := fmt.Fprintf(w, "%d\t%d\t%s\n", rec.Position, rec.Term, rec.Result)
	return err
}
