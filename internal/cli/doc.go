// Package cli renders records for the terminal and for files, and provides
// the interactive pieces of the command line: the spinner, shell completion
// and the REPL.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayBanner], [DisplaySummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatDebugRecord], [FormatExecutionDuration].
//
//   - Create*/Write* functions touch the filesystem.
//     Examples: [CreateOutputFile].
package cli
