package fibonacci

import (
	"fmt"
	"math/bits"
)

// At returns F(n) directly using the fast doubling identities, without
// walking the sequence:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
//
// It is used for random access (the REPL's "fib" command) and as an
// independent cross-check of Sequence.
//
// Returns an error if n is negative or above MaxIndex.
func At(n int) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("fibonacci index must be non-negative, got %d", n)
	}
	if n > MaxIndex {
		return 0, fmt.Errorf("F(%d) does not fit in int64 (max index %d)", n, MaxIndex)
	}
	if n == 0 {
		return 0, nil
	}

	// Intermediate F(k+1) can reach F(93) for n = 92, which overflows
	// int64; uint64 holds up to F(93) exactly.
	var fk, fk1 uint64 = 0, 1
	u := uint64(n)
	for i := bits.Len64(u) - 1; i >= 0; i-- {
		f2k := fk * (2*fk1 - fk)
		f2k1 := fk1*fk1 + fk*fk
		fk, fk1 = f2k, f2k1
		if (u>>uint(i))&1 == 1 {
			fk, fk1 = fk1, fk+fk1
		}
	}
	return int64(fk), nil
}
