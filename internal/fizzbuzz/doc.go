// Package fizzbuzz maps a Fibonacci term to its display value.
//
// The rule table, in order of precedence:
//
//	prime                        -> "BuzzFizz"
//	divisible by 3 and 5 (and 0) -> "FizzBuzz"
//	divisible by 3 only          -> "Fizz"
//	divisible by 5 only          -> "Buzz"
//	otherwise                    -> the number itself
//
// Primality wins over divisibility: 3 and 5 are reported as "BuzzFizz".
package fizzbuzz
