// Package version exposes the build version, overridable with
// -ldflags "-X github.com/buemura/willie/internal/version.Version=...".
package version

// Version is the released version of Willie.
var Version = "1.0.0"

// Codename is printed by the version command.
const Codename = "GREASE ME UP"
