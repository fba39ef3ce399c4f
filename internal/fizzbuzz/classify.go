package fizzbuzz

import "github.com/agbru/fibfizz/internal/primality"

// Classify returns the display value of x under the rule table.
func Classify(x int64) Result {
	if primality.IsPrime(x) {
		return LabelResult(LabelPrime)
	}

	byThree := x%3 == 0
	byFive := x%5 == 0

	switch {
	case byThree && byFive:
		return LabelResult(LabelBoth)
	case byThree:
		return LabelResult(LabelThree)
	case byFive:
		return LabelResult(LabelFive)
	default:
		return NumberResult(x)
	}
}
