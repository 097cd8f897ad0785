// Package version carries build metadata for rxkit binaries and telemetry.
//
// Version and commit are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/rxkit/version.Version=0.3.0"
//
// When unset, the commit is read from the module's embedded VCS settings.
package version
