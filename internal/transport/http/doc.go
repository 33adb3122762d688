// Package http exposes the derived statistics tables over a read-only JSON
// API. The report is computed once from the loaded dataset and served from
// memory; handlers never trigger recomputation.
package http
