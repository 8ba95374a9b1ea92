// Package errors provides the structured error type shared by every syncflow
// package. Each failure carries a machine-readable code, a message and
// optional details, and wraps its cause for errors.Is / errors.As.
package errors
