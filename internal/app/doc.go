// Package app wires configuration, the driver and the presentation layers
// into the fibfizz command. It owns process-level concerns: signal
// handling, the run timeout, logging setup and exit codes.
package app
