// Package logger provides structured logging for streamkit applications
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("sse-relay")
//	log.Info("client connected", logger.Fields(logger.FieldClientID, id))
package logger
