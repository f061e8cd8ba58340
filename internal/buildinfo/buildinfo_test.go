package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"dev", "abc123", "abc123"},
		{"v1.2.0", "abc123", "v1.2.0"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Fatalf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.0.0", "abc", "2026-01-02"
	if got, want := String(), "v1.0.0 (abc, 2026-01-02)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFromBuildInfo(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		},
	}

	Version, Commit, Date = "dev", "unknown", "unknown"
	fromBuildInfo(bi)
	if got, want := String(), "v0.3.1 (0123456789ab, 2026-03-04T05:06:07Z)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	// Stamped values win.
	Version, Commit, Date = "v9.0.0", "stamped", "today"
	fromBuildInfo(bi)
	if got, want := String(), "v9.0.0 (stamped, today)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	Version, Commit, Date = "dev", "unknown", "unknown"
	fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Short(); got != "dev" {
		t.Fatalf("Short() = %q, want dev", got)
	}
}
