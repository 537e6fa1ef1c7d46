package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plotwin.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
	if got := c.PollInterval(); got != time.Millisecond {
		t.Errorf("PollInterval = %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
cols = 800
rows = 600
font = "/lib/font/bit/pelm/euro.9.font"
wheel_base = 1.5
debug = true
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Cols = 800
	want.Rows = 600
	want.Font = "/lib/font/bit/pelm/euro.9.font"
	want.WheelBase = 1.5
	want.Debug = true
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "cols = 800\ndrag_pixels = 50.0\n")
	t.Setenv("PLOTWIN_COLS", "1024")
	t.Setenv("PLOTWIN_DOUBLE_CLICK_MSEC", "250")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Cols = 1024
	want.DragPixels = 50
	want.DoubleClickMsec = 250
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "missing file", file: ""},
		{name: "bad toml", file: "cols = \n"},
		{name: "unknown key", file: "colour = 3\n"},
		{name: "bad env", file: "cols = 1\n", env: map[string]string{"PLOTWIN_ROWS": "many"}},
		{name: "invalid value", file: "wheel_base = 0.0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.toml")
			if tc.file != "" {
				path = writeFile(t, tc.file)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(path); !errors.Is(err, ErrConfig) {
				t.Errorf("Load error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		valid bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero cols", func(c *Config) { c.Cols = 0 }, false},
		{"negative rows", func(c *Config) { c.Rows = -1 }, false},
		{"zero poll", func(c *Config) { c.PollMsec = 0 }, false},
		{"zero double click", func(c *Config) { c.DoubleClickMsec = 0 }, true},
		{"negative double click", func(c *Config) { c.DoubleClickMsec = -5 }, false},
		{"negative wheel base", func(c *Config) { c.WheelBase = -1.2 }, false},
		{"zero drag", func(c *Config) { c.DragPixels = 0 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.edit(&c)
			err := c.Validate()
			if (err == nil) != tc.valid {
				t.Errorf("Validate() = %v, want valid %v", err, tc.valid)
			}
			if err != nil && !errors.Is(err, ErrConfig) {
				t.Errorf("Validate error %v does not wrap ErrConfig", err)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	c := Default()
	c.Font = "/mnt/font/Go-Regular/11a/font"
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Load(writeFile(t, buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
