// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/claimviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/claimviz/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/claimviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/claimviz
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information on one line, e.g.
// "v0.3.0 (a1b2c3d, 2026-01-02T03:04:05Z)".
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
