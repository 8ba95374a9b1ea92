// Package version reports the build version of syncflow binaries.
//
// Version, commit and build time are set at link time and fall back to the
// VCS stamp the Go toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/syncflow/version.Version=v0.3.0" ./cmd/flowdemo
package version
