// Package logging wires the fleet service's structured logs. Console
// output is JSON on stdout; once the database is up, ERROR records are
// mirrored into the system_logs table by PGHandler.
package logging

import (
	"log/slog"
	"os"
)

// StdoutHandler returns the JSON console handler shared by startup and
// the Postgres fan-out.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// Setup installs a console-only logger. main swaps in the Postgres
// fan-out once the database connection succeeds.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}
