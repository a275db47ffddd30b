package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")

	t.Run("dev build", func(t *testing.T) {
		i := Info{Version: "dev", CommitHash: "abc", BuildTime: "unknown"}
		assert.Equal(t, "sdlppx dev (commit abc, built unknown)", i.String())
		assert.Equal(t, "abc", i.Short())
	})

	t.Run("tagged build", func(t *testing.T) {
		i := Info{Version: "v1.2.0", CommitHash: "0123456789abcdef", BuildTime: "2026-10-01"}
		assert.Equal(t, "sdlppx v1.2.0 (commit 0123456789abcdef, built 2026-10-01)", i.String())
		assert.Equal(t, "0123456", i.Short())
	})
}

func TestToolVersion(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"plain dev build", Info{Version: "dev", CommitHash: "dev"}, "dev"},
		{"dev build with commit", Info{Version: "dev", CommitHash: "0123456789abcdef"}, "dev+0123456"},
		{"tagged build", Info{Version: "v1.2.0", CommitHash: "0123456789abcdef"}, "1.2.0"},
		{"prerelease tag", Info{Version: "v2.0.0-rc.1", CommitHash: "0123456789abcdef"}, "2.0.0-rc.1"},
		{"non-semver tag", Info{Version: "nightly", CommitHash: "0123456789abcdef"}, "nightly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.ToolVersion())
		})
	}
}
