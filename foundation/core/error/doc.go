// Package error provides structured error handling for etds.
//
// Package: error
// Title: etds Error Handling
// Description: Implements an error type carrying a code, a severity, a cause
//              and free-form details, plus helpers that classify any error in
//              a chain, including the translator's own position-carrying errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation with coded errors
//
// Usage:
//
//	import mdwerror "github.com/msto63/etds/foundation/core/error"
//
//	err := mdwerror.Wrap(dbErr, "failed to record run").
//		WithCode(mdwerror.CodeStorageError).
//		WithDetail("path", path)
//
//	if mdwerror.HasCode(err, mdwerror.CodeStorageError) {
//		// handle storage failures
//	}
package error
