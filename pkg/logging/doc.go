// Package logging provides the operator's logging system, a thin layer over
// Go's standard slog package.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about operation
//   - **Warn**: Warning messages, e.g. group members rejected during conversion
//   - **Error**: Failed reconciliation cycles and startup failures
//
// Every entry carries a subsystem attribute and, for errors, an error attribute.
//
// # Usage Examples
//
//	logging.Init(logging.LevelInfo, logging.FormatJSON, os.Stdout)
//
//	logging.Info("Bootstrap", "Starting manager")
//	logging.Warn("Reconciler", "Rejected member %s: %s", name, reason)
//	logging.Error("Reconciler", err, "Reconciliation failed for %s", key)
//
// # Output Formats
//
// FormatText (the default) writes slog text lines. FormatJSON writes one JSON
// object per line and is selected with --structured-logs.
//
// # Controller-Runtime Integration
//
// Init installs the same slog handler as the controller-runtime logger via
// logr.FromSlogHandler, so informer, cache and controller messages share the
// configured level and format. Logr returns a logr.Logger for code that needs
// one directly.
package logging
