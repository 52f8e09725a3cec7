// Package bootstrap runs a finite CLI task with startup and shutdown hooks.
//
// NewApp applies config defaults, validates and initializes the logger.
// RunTask runs OnStart hooks, the task under a signal-aware context, and
// OnStop hooks bounded by a graceful timeout.
package bootstrap
