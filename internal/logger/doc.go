// Package logger wraps zap to give nwjs-swap:
//   - a console logger writing to stderr so stdout stays free for command output,
//   - context helpers (ToContext/FromContext/WithName/WithKV) used to inject a run-scoped logger,
//   - level parsing and switching for the --verbose flag and the log.level setting,
//   - leveled convenience functions (Infof, WarnKV, ErrorKV, ...).
//
// Every pipeline step takes a context and logs through the logger stored in it,
// so a run can carry its own fields (run id, game directory) without global state.
package logger
