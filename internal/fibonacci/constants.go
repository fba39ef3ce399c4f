package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Range Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxIndex is the largest position whose term fits in an int64.
	//
	// F(92) = 7,540,113,804,746,346,429. F(93) exceeds math.MaxInt64, so a
	// Sequence advanced past MaxIndex yields wrapped (meaningless) values.
	MaxIndex = 92

	// MaxTerm is F(MaxIndex).
	MaxTerm int64 = 7540113804746346429
)
