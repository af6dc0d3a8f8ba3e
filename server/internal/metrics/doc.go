// Package metrics exposes launchdash-server counters in the Prometheus text
// exposition format at /metrics.
//
// Server owns a private prometheus.Registry holding the request, callback,
// input and reload counters; gauges sampled on every scrape are added with
// GaugeFunc. Instrument wraps a route so each response is counted by status
// code.
package metrics
