// Package buildinfo holds version information stamped at link time:
//
//	go build -ldflags "-X github.com/vijaymanbajracharya/stratcol/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/vijaymanbajracharya/stratcol/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/vijaymanbajracharya/stratcol/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/stratcol
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information as reported by the API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Current returns the stamped values.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
