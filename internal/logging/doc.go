// Package logging provides structured logging utilities for the fathomsync
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "fathom.list_meetings")
//	logger.Info("page fetched",
//	    logging.Status(logging.StatusSuccess))
//
// Errors are attached through the nil-safe Err helper:
//
//	logger.Warn("state save failed", logging.Err(err))
package logging
