// Package metrics counts what a run emitted in a Prometheus registry and
// writes it out in the node_exporter textfile format. The registry is
// private to each Collector; nothing is registered globally.
package metrics
