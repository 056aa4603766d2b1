// Package logging provides structured logging for Hyperion.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Optional entity-key hashing so raw entity identifiers never land in
//     log output
//   - Context-aware logging with evaluation IDs and realm labels
//   - Configurable log levels (debug, info, warn, error)
//
// Log output defaults to stderr: stdout belongs to the decision envelope
// stream.
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:          "info",
//	    Format:         "json",
//	    HashEntityKeys: true,
//	})
//
//	// Log structured data
//	logger.Info("decision committed",
//	    "entity_key", "agent-42",  // hashed to ek_... when enabled
//	    "decision", "ALLOW",
//	    "omega", 0.92,
//	)
//
//	// Create context-aware logger
//	ctx = logging.WithEvaluationID(ctx, evalID)
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("gated")  // Includes evaluation_id automatically
//
// # Entity-key hashing
//
// When HashEntityKeys is enabled, values of entity_key fields are replaced
// with a short stable SHA-256 digest (ek_ prefix). The digest is
// deterministic, so log lines for one entity still correlate across an
// incident, but the raw identifier is never written.
package logging
