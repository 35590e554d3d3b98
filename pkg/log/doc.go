/*
Package log provides structured logging for the exporter using zerolog.

A single global Logger is configured once at startup by Init. Components
derive child loggers with WithComponent so every line carries the emitting
component:

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	logger := log.WithComponent("collector")
	logger.Warn().Err(err).Dur("period", period).Msg("Scrape failed")

Console output, with RFC3339 timestamps, is used unless JSONOutput is set.
Output goes to stderr by default so it never mixes with anything a caller
prints on stdout.

# Levels

debug, info, warn and error are accepted, case-insensitively, by ParseLevel.
The level applies process-wide through zerolog.SetGlobalLevel.
*/
package log
