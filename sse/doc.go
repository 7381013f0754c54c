// Package sse provides Server-Sent Events (SSE) infrastructure for
// real-time delivery of stream values to browsers.
//
// It includes client connection management, pattern-based broadcasting to
// multiple subscribers, and a Relay that subscribes to a stream and fans
// its values out to connected clients.
//
// # Architecture
//
//   - Hub: Central event router managing client connections
//   - Relay: Subscribes a stream.Stream and broadcasts each value
//   - ServeSSE: HTTP handler loop for one client connection
//
// # Usage
//
//	hub := sse.NewHub()
//	go hub.Run()
//	relay := sse.NewRelay[Progress](hub, "progress")
//	sub := relay.Run(progressStream)
//	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
//	    sse.ServeSSE(hub, w, r, "", sse.WithStream("progress"))
//	})
package sse
