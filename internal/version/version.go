// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/modestbazar/storefront/internal/version.Version=v1.2.0 \
//	  -X github.com/modestbazar/storefront/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the version and commit for health output and logs.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
