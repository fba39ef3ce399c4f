// Package logging provides the structured diagnostic logger of fibfizz.
// Records go to stdout; everything written through this package goes to
// stderr so piping the program never mixes the two.
package logging
