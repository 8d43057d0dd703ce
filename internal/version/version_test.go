package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestShort(t *testing.T) {
	assert.NotEmpty(t, Short())
}

func TestDetailed(t *testing.T) {
	out := Detailed()
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "Go:")
	assert.Contains(t, out, "Platform:")
}

func TestParseBuildTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		zero bool
	}{
		{"rfc3339", "2026-01-02T15:04:05Z", false},
		{"no timezone", "2026-01-02T15:04:05", false},
		{"space separated", "2026-01-02 15:04:05", false},
		{"unknown", "unknown", true},
		{"empty", "", true},
		{"garbage", "yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseBuildTime(tt.in)
			assert.Equal(t, tt.zero, got.IsZero())
			if !tt.zero {
				assert.Equal(t, 2026, got.Year())
				assert.Equal(t, time.January, got.Month())
			}
		})
	}
}
