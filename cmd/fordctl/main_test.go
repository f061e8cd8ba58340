package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fordview/internal/config"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{"FORDVIEW_CONFIG", "FORDVIEW_CENTER", "FORDVIEW_WIDTH", "FORDVIEW_LOG_LEVEL", "CLICOLOR", "CLICOLOR_FORCE"} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDumpJSON(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "dump", "--json", "--classic", "--width", "200", "--height", "100", "--center", "0.5", "--view-width", "2.2")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	var got dumpOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, out)
	}
	want := []string{"0/1", "1/1", "1/2"}
	if len(got.Circles) < len(want) {
		t.Fatalf("dump returned %d circles, want at least %d", len(got.Circles), len(want))
	}
	for i, w := range want {
		c := got.Circles[i]
		if s := fmt.Sprintf("%d/%d", c.Num, c.Den); s != w {
			t.Fatalf("circle %d = %s, want %s", i, s, w)
		}
	}
	if got.Stats.Emitted != len(got.Circles) {
		t.Fatalf("Stats.Emitted = %d, want %d", got.Stats.Emitted, len(got.Circles))
	}
}

func TestDumpTable(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "dump", "--classic", "--limit", "3", "--stats", "--width", "200", "--height", "100")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "FRACTION") {
		t.Fatalf("first line = %q, want header", lines[0])
	}
	for _, want := range []string{"0/1", "1/1", "1/2", "visited"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output contains ANSI escapes with NO_COLOR set:\n%s", out)
	}
	// Header, three rows, blank line, stats.
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
}

func TestRenderPNG(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "frame.png")
	if _, err := execute(t, "render", "--out", path, "--width", "120", "--height", "80"); err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Fatalf("image size = %dx%d, want 120x80", b.Dx(), b.Dy())
	}
}

func TestRenderStdout(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "render", "-o", "-", "--width", "64", "--height", "32")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := png.Decode(strings.NewReader(out)); err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
}

func TestFrameFlagErrors(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"zero view width", []string{"dump", "--view-width", "0"}},
		{"negative canvas", []string{"dump", "--width", "-5"}},
		{"bad log level", []string{"dump", "--log-level", "loud"}},
		{"missing config", []string{"dump", "--config", "/nonexistent/fordview.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatalf("%v: expected error", tt.args)
			}
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "sub", "config.toml")

	out, err := execute(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("config init output = %q, want path", out)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Fatal("second config init without --force: expected error")
	}
	if _, err := execute(t, "config", "init", "--force", path); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	t.Setenv("FORDVIEW_CENTER", "0.25")
	out, err = execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{`log_level = "info"`, "center = 0.25", "[render]", "tiling = true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitDefaultPath(t *testing.T) {
	setupEnv(t)
	if _, err := execute(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(config.DefaultPath()); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestPaint(t *testing.T) {
	if got := paint(false, ansiBold, "1/2"); got != "1/2" {
		t.Fatalf("paint(false) = %q, want plain", got)
	}
	if got := paint(true, ansiBold, "1/2"); got != ansiBold+"1/2"+ansiReset {
		t.Fatalf("paint(true) = %q", got)
	}
}
