// Package primality decides whether an integer is prime.
package primality

// IsPrime reports whether x is prime.
//
// Values below 2 (negatives, 0 and 1) are not prime, 2 is prime and every
// other even number is composite. Odd candidates are checked by trial
// division over odd divisors d with d*d <= x.
//
// Parameters:
//   - x: The integer to test.
//
// Returns:
//   - bool: true if x is prime.
func IsPrime(x int64) bool {
	if x < 2 {
		return false
	}
	if x == 2 {
		return true
	}
	if x%2 == 0 {
		return false
	}

	// d <= x/d instead of d*d <= x: the square overflows near MaxInt64.
	for d := int64(3); d <= x/d; d += 2 {
		if x%d == 0 {
			return false
		}
	}
	return true
}
