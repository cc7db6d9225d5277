// Package metrics records build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	t := transform.New(renderer)                 // NoopRecorder
//	t := transform.New(renderer, transform.WithRecorder(rec))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry,
// which WriteTextfile exports for node_exporter's textfile collector.
package metrics
