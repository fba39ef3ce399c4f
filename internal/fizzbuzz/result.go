package fizzbuzz

import (
	"encoding/json"
	"strconv"
)

// Label is one of the fixed display words substituted for a number.
type Label uint8

const (
	// LabelNone is the zero Label carried by numeric results.
	LabelNone Label = iota
	// LabelPrime marks a prime term.
	LabelPrime
	// LabelBoth marks a term divisible by both 3 and 5.
	LabelBoth
	// LabelThree marks a term divisible by 3 but not 5.
	LabelThree
	// LabelFive marks a term divisible by 5 but not 3.
	LabelFive
)

var labelText = [...]string{
	LabelNone:  "",
	LabelPrime: "BuzzFizz",
	LabelBoth:  "FizzBuzz",
	LabelThree: "Fizz",
	LabelFive:  "Buzz",
}

// Labels lists every real label in rule-table order.
var Labels = []Label{LabelPrime, LabelBoth, LabelThree, LabelFive}

// String returns the display text of the label.
func (l Label) String() string {
	if int(l) < len(labelText) {
		return labelText[l]
	}
	return "Label(" + strconv.Itoa(int(l)) + ")"
}

// Result is the outcome of classifying one term: either a Label or the
// original number. The zero Result is Number(0), which Classify never
// returns since 0 is labelled "FizzBuzz".
type Result struct {
	label  Label
	number int64
}

// LabelResult wraps a label.
func LabelResult(l Label) Result {
	return Result{label: l}
}

// NumberResult wraps an unlabelled number.
func NumberResult(x int64) Result {
	return Result{number: x}
}

// IsLabel reports whether r carries a label rather than a number.
func (r Result) IsLabel() bool { return r.label != LabelNone }

// Label returns the label, or LabelNone for numeric results.
func (r Result) Label() Label { return r.label }

// Number returns the raw number and true for numeric results, or 0 and
// false for labelled ones.
func (r Result) Number() (int64, bool) {
	if r.IsLabel() {
		return 0, false
	}
	return r.number, true
}

// String renders the label text or the decimal number.
func (r Result) String() string {
	if r.IsLabel() {
		return r.label.String()
	}
	return strconv.FormatInt(r.number, 10)
}

// MarshalJSON encodes labels as JSON strings and numbers as JSON numbers,
// so consumers can tell the two variants apart.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsLabel() {
		return json.Marshal(r.label.String())
	}
	return []byte(strconv.FormatInt(r.number, 10)), nil
}
