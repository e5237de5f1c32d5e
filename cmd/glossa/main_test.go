package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/glossa-lang/glossa/pkg/config"
)

const helloSource = `ΠΡΟΓΡΑΜΜΑ Τ
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: α
ΑΡΧΗ
  α <- 42
  ΓΡΑΨΕ α
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`

func withCapturedStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestRunEntryExecutesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.gl")
	if err := os.WriteFile(path, []byte(helloSource), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	var code int
	out := withCapturedStdout(t, func() {
		code = run([]string{"run", path})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if out != "42\n" {
		t.Fatalf("stdout = %q, want %q", out, "42\n")
	}
}

func TestRunBareFileShorthand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.gl")
	if err := os.WriteFile(path, []byte(helloSource), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	var code int
	out := withCapturedStdout(t, func() {
		code = run([]string{path})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if out != "42\n" {
		t.Fatalf("stdout = %q, want %q", out, "42\n")
	}
}

func TestRunMissingSourceErrors(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	if code := run([]string{"run"}); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestVersionFlag(t *testing.T) {
	var code int
	out := withCapturedStdout(t, func() {
		code = run([]string{"--version"})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if out != cliToolVersion+"\n" {
		t.Fatalf("stdout = %q, want %q", out, cliToolVersion+"\n")
	}
}

func TestRunUsesGlossaYamlDefaultSource(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.gl")
	if err := os.WriteFile(srcPath, []byte(helloSource), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	cfgPath := filepath.Join(dir, "glossa.yaml")
	if err := os.WriteFile(cfgPath, []byte("default_source: main.gl\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	var code int
	out := withCapturedStdout(t, func() {
		code = run([]string{"run"})
	})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if out != "42\n" {
		t.Fatalf("stdout = %q, want %q", out, "42\n")
	}
}

func TestRealFormatterForFixed(t *testing.T) {
	cfg := config.Default()
	cfg.RealFormat = config.RealFormatFixed
	cfg.FixedDecimals = 3

	fmtr := realFormatterFor(cfg)
	if fmtr == nil {
		t.Fatalf("expected a non-nil formatter for fixed real_format")
	}
	if got, want := fmtr(1.5), "1.500"; got != want {
		t.Fatalf("formatter(1.5) = %q, want %q", got, want)
	}
}

func TestRealFormatterForShortestIsNil(t *testing.T) {
	if got := realFormatterFor(config.Default()); got != nil {
		t.Fatalf("expected nil formatter for the default shortest policy, got %v", got)
	}
}
