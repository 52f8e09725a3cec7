// Package version reports the build version of speechprep.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/speechprep/version.Version=1.0.0"
package version
