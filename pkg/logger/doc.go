// Package logger provides the structured logging interface used across xfollow.
//
// It wraps zerolog with a small Logger interface:
//
//	logger.Initialize(&cfg.Logging)
//	logger.GetLogger().WithField("list", "following").Info("merge complete")
//
// Console output goes to stderr with coloured levels so it does not interleave
// with command output on stdout. When Logging.File is set, entries are also
// appended to that file.
//
// Tests inject NewTestLogger and assert on the captured messages.
package logger
