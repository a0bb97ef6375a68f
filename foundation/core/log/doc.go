// Package log provides structured logging for etds.
//
// Package: log
// Title: etds Structured Logging
// Description: Implements a leveled structured logger with persistent
//              context fields, JSON/text/console/logfmt output and timers
//              that log the duration of an operation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation with structured logging
//
// Usage:
//
//	import mdwlog "github.com/msto63/etds/foundation/core/log"
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatConsole,
//	}).WithField("component", "server")
//
//	logger.Info("listening", mdwlog.Field("addr", ":8080"))
//
//	timer := logger.StartTimer("compile")
//	// ... translate an expression
//	timer.Stop()
package log
