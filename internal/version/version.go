// Package version holds build information set via -ldflags.
package version

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/Currency-Rate-Sync-Backend/internal/version.Version=x.y.z".
var Version = "dev"
