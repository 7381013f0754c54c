// Package util provides small shared helpers for streamkit packages.
//
// It includes string sanitization and zero-value coalescing used by the
// config, sse, and bootstrap packages.
package util
