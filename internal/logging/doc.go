// Package logging builds the slog loggers used throughout pano.
//
// It offers console and JSON handlers, typed attribute helpers, and
// component-scoped child loggers so log output stays consistent between the
// CLI and the library packages. Construct loggers through New or
// NewFromConfig rather than calling slog directly.
package logging
