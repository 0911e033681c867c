package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"procgen/internal/config"
	"procgen/internal/export"
)

func TestMeshCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sphere.obj")
	var stderr bytes.Buffer
	err := run([]string{"mesh", "-shape", "uv-sphere", "-resolution", "3", "-layout", "separated", "-out", out}, &stderr)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// r=3: 13 columns of 7 rows minus the seam poles, 12 columns of 10 triangles
	if v, f := strings.Count(string(b), "\nv "), strings.Count(string(b), "\nf "); v != 89 || f != 120 {
		t.Errorf("got %d vertices and %d faces, want 89 and 120", v, f)
	}
	if !strings.Contains(stderr.String(), "mesh written") {
		t.Errorf("missing log line in %q", stderr.String())
	}
}

func TestNoiseCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "procgen.yaml")
	yaml := "log_level: warn\nnoise:\n  resolution: 16\n  dimensions: 3\n  metric: chebyshev\n  function: f2-f1\n  shape: torus\noutput:\n  dir: " + dir + "\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	var stderr bytes.Buffer
	if err := run([]string{"noise", "-config", cfgPath, "-seed", "7", "-compress"}, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("warn level still logged %q", stderr.String())
	}

	rc, err := export.Open(filepath.Join(dir, "noise.bmp"+export.CompressedExt))
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	img, err := bmp.Decode(rc)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("image is %v, want 16x16", b)
	}
}

func TestAllCommand(t *testing.T) {
	dir := t.TempDir()
	if err := run([]string{"all", "-resolution", "2", "-noise-resolution", "8", "-out", dir, "-log-level", "error"}, io.Discard); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	// one texture and seven meshes
	if len(entries) != 8 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("wrote %v", names)
	}
}

func TestRunErrors(t *testing.T) {
	if err := run(nil, io.Discard); !errors.Is(err, errUsage) {
		t.Errorf("no args: got %v", err)
	}
	if err := run([]string{"render"}, io.Discard); !errors.Is(err, errUsage) {
		t.Errorf("unknown command: got %v", err)
	}
	if err := run([]string{"noise", "-frequency", "0", "-out", filepath.Join(t.TempDir(), "n.bmp")}, io.Discard); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("zero frequency: got %v", err)
	}
	if err := run([]string{"mesh", "-shape", "cube-sphere", "-resolution", "60", "-out", filepath.Join(t.TempDir(), "c.obj")}, io.Discard); err == nil {
		t.Errorf("expected index overflow error")
	}
	if err := run([]string{"mesh", "-bogus"}, io.Discard); err == nil {
		t.Errorf("expected flag error")
	}
	if err := run([]string{"mesh", "-h"}, io.Discard); err != nil {
		t.Errorf("-h: got %v", err)
	}
}
