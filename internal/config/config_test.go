package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fordview/internal/ford"
)

var envVars = []string{"FORDVIEW_CONFIG", "FORDVIEW_CENTER", "FORDVIEW_WIDTH", "FORDVIEW_LOG_LEVEL"}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	// Keep DefaultPath away from the real user config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name    string
		file    string
		env     map[string]string
		wantErr bool
		want    func(*Config)
	}{
		{
			name: "Defaults",
			want: func(*Config) {},
		},
		{
			name: "FileOverridesDefaults",
			file: `
log_level = "debug"

[view]
center = 0.25
zoom_speed = 1.05

[render]
tiling = false
overflow = "strict"
workers = 4
`,
			want: func(c *Config) {
				c.LogLevel = "debug"
				c.View.Center = 0.25
				c.View.ZoomSpeed = 1.05
				c.Render.Tiling = false
				c.Render.Overflow = "strict"
				c.Render.Workers = 4
			},
		},
		{
			name: "EnvOverridesFile",
			file: "[view]\ncenter = 0.25\n",
			env: map[string]string{
				"FORDVIEW_CENTER":    "-3",
				"FORDVIEW_WIDTH":     "1e-6",
				"FORDVIEW_LOG_LEVEL": "warn",
			},
			want: func(c *Config) {
				c.View.Center = -3
				c.View.Width = 1e-6
				c.LogLevel = "warn"
			},
		},
		{
			name:    "BadEnvFloat",
			env:     map[string]string{"FORDVIEW_WIDTH": "wide"},
			wantErr: true,
		},
		{
			name:    "InvalidWidth",
			env:     map[string]string{"FORDVIEW_WIDTH": "0"},
			wantErr: true,
		},
		{
			name:    "BadTOML",
			file:    "[view\n",
			wantErr: true,
		},
		{
			name:    "UnknownOverflow",
			file:    "[render]\noverflow = \"wrap\"\n",
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.file != "" {
				path = writeFile(t, tc.file)
			}

			got, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			want := Default()
			tc.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigEnvPath(t *testing.T) {
	clearAllEnv(t)
	path := writeFile(t, "[window]\nhz = 30\n")
	t.Setenv("FORDVIEW_CONFIG", path)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Window.Hz != 30 {
		t.Fatalf("Window.Hz = %d, want 30", c.Window.Hz)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearAllEnv(t)
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, err := Load(missing); err == nil {
		t.Fatal("explicit missing path: expected error")
	}
	if _, err := Load(""); err != nil {
		t.Fatalf("default missing path: %v", err)
	}
}

func TestValidateReportsAll(t *testing.T) {
	c := Default()
	c.View.ZoomSpeed = 1
	c.Render.Workers = 0
	c.Window.Width = -1
	c.LogLevel = "loud"

	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"zoom_speed", "workers", "window size", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("Validate() = %q, missing %q", err, want)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearAllEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	c := Default()
	c.View.Center = 1.0 / 3
	c.Render.Overflow = "strict"
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatalf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSlogLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"
	l, err := c.SlogLevel()
	if err != nil || l != slog.LevelDebug {
		t.Fatalf("SlogLevel() = %v, %v, want DEBUG", l, err)
	}
}

func TestEngineOptions(t *testing.T) {
	c := Default()
	c.Render.Tiling = false
	if ford.New(c.EngineOptions(nil)...).Tiling() {
		t.Fatal("engine tiling on, want off")
	}
	if c.ViewState().Width != c.View.Width {
		t.Fatalf("ViewState().Width = %v, want %v", c.ViewState().Width, c.View.Width)
	}
}
