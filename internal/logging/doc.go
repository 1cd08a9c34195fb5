// Package logging provides a simple leveled logging interface shared by
// all pipeline stages.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the stage
//
// The log level is configured via the LOG_LEVEL environment variable.
package logging
