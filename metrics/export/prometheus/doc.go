// Package prometheus exposes engine metrics in Prometheus text exposition
// format, either as a rendered string or as an http.Handler to mount at
// /metrics.
package prometheus
