// Package logger provides structured logging for syncflow and its tools
// using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and trace correlation through the OpenTelemetry span in a context.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("flow")
//	log.Debug("value halted", logger.Fields(logger.FieldNode, 3))
package logger
