// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) with console encoding for interactive CLI use
// and JSON encoding for machine consumption.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Parsed snapshot")
//
//	// While working on one input file:
//	l := logger.WithSnapshot(log, "snapshot_1")
//	l.Warn("Row skipped", zap.Int("row", 7))
package logger
