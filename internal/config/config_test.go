// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chebizarro/ubit-sub003/io/input"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[Menu]
OpenDelay = "150ms"

[Log]
Verbose = true
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Menu.OpenDelay = Duration{150 * time.Millisecond}
	want.Log.Verbose = true
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	ic := c.Input(nil)
	if ic.OpenDelay != 150*time.Millisecond || ic.CloseDelay != input.DefaultCloseDelay {
		t.Errorf("Input() = %+v", ic)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown.toml":  "[Menu]\nHoverDelay = \"1s\"\n",
		"badvalue.toml": "[Menu]\nOpenDelay = \"soon\"\n",
		"negative.toml": "[Menu]\nCloseDelay = \"-1s\"\n",
	} {
		path := filepath.Join(dir, name)
		writeFile(t, path, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: no error", name)
		} else if !strings.Contains(err.Error(), name) {
			t.Errorf("%s: error %q does not name the file", name, err)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("missing file did not give defaults (-want +got):\n%s", diff)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	c := Default()
	c.Menu.CloseDelay = Duration{time.Second}
	if err := Write(path, c); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got, want := Path("flowreplay"), filepath.Join(dir, "flowreplay", FileName); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[Menu]\nOpenDelay = \"100ms\"\n")
	w, err := Watch(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	writeFile(t, path, "[Menu]\nOpenDelay = \"200ms\"\n")
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-w.Updates:
			// Editors may produce several events; wait for the
			// final content.
			if c.Menu.OpenDelay.Duration == 200*time.Millisecond {
				return
			}
		case err := <-w.Errors:
			// A partially written file may fail to parse.
			t.Logf("reload error: %v", err)
		case <-timeout:
			t.Fatal("no update after rewriting the file")
		}
	}
}
