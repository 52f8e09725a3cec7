// Package logger provides structured logging for speechprep using zerolog.
//
// It supports JSON and console output, level configuration, and loggers
// scoped to a component, an import run or a single segment.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("importer").WithRunID(runID)
//	log.Info("imported samples", logger.Fields("count", n))
package logger
