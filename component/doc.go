// Package component defines the core interfaces for lifecycle-managed
// services in streamkit.
//
// Components represent services that require startup, shutdown, and health
// monitoring, such as the SSE hub or a stream relay. The Registry starts
// them in registration order and stops them in reverse.
package component
