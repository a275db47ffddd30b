// Package version reports the build of the sdlppx binary. The same values are
// written as creationtool/creationtoolversion into every exported TMX header.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Name is the tool name written into exported files
const Name = "sdlppx"

// Set at build time:
//
//	go build -ldflags "-X github.com/teranos/sdlppx/version.Version=v1.0.0 -X github.com/teranos/sdlppx/version.CommitHash=$(git rev-parse HEAD)"
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, i.Version, i.CommitHash, i.BuildTime)
}

// ToolVersion is the value recorded as creationtoolversion.
// Semantic version tags are written without their "v" prefix; untagged builds
// with a known commit report dev+<short commit>.
func (i Info) ToolVersion() string {
	if i.Version == "dev" {
		if i.CommitHash == "dev" {
			return i.Version
		}
		return "dev+" + i.Short()
	}
	if v, err := semver.NewVersion(i.Version); err == nil {
		return v.String()
	}
	return i.Version
}

// Short returns the abbreviated commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
