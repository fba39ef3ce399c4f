// Package apperrors defines the structured error types of fibfizz and the
// mapping from errors to process exit codes.
//
// The classification core is total and never fails; every error in this
// package originates at the edges: argument validation, output writing,
// timeouts and cancellation.
//
// All wrapping types implement Unwrap() so errors.Is and errors.As see
// through them.
package apperrors
