// Package log provides structured protocol logging for the analyzer.
//
// This package defines the Logger interface and Event records for
// capturing analyzer output at two layers: raw bus frames and decoded
// Serial-over-I2C events. It is separate from operational logging (slog);
// protocol capture provides a machine-readable trace for later analysis.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("notecard.nlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(console, file)
//
// # File Format
//
// Log files use CBOR encoding with .nlog extension. The soi2c-log CLI
// provides viewing, filtering, and export capabilities.
package log
