package logfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindLogFile_ExplicitWins(t *testing.T) {
	t.Setenv(EnvLogFile, "/env/warnings.log")

	got, err := FindLogFile("/explicit/warnings.log")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/explicit/warnings.log" {
		t.Errorf("got %q, want explicit path", got)
	}
}

func TestFindLogFile_ExplicitMayNotExist(t *testing.T) {
	// The game creates the log on launch; an explicit path is returned
	// as-is and the tailer retries opening it.
	missing := filepath.Join(t.TempDir(), "not-yet.log")
	got, err := FindLogFile(missing)
	if err != nil {
		t.Fatal(err)
	}
	if got != missing {
		t.Errorf("got %q, want %q", got, missing)
	}
}

func TestFindLogFile_EnvFallback(t *testing.T) {
	t.Setenv(EnvLogFile, "/env/warnings.log")

	got, err := FindLogFile("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/env/warnings.log" {
		t.Errorf("got %q, want env path", got)
	}
}

func TestFindLogFile_Autodetect(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvLogFile, "")
	t.Setenv("USERPROFILE", home)

	dir := filepath.Join(home, "Documents", "My Games", "Company of Heroes 2")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, LogFileName)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindLogFile("")
	if err != nil {
		t.Fatal(err)
	}
	resolved, _ := filepath.EvalSymlinks(path)
	if got != resolved {
		t.Errorf("got %q, want %q", got, resolved)
	}
}

func TestFindLogFile_NotFound(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	t.Setenv("USERPROFILE", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := FindLogFile("")
	if !errors.Is(err, ErrLogFileNotFound) {
		t.Errorf("err = %v, want ErrLogFileNotFound", err)
	}
}

func TestDefaultLogFiles(t *testing.T) {
	t.Setenv("USERPROFILE", "/home/tester")

	paths := DefaultLogFiles()
	if len(paths) != 2 {
		t.Fatalf("got %d candidates, want 2", len(paths))
	}
	for _, p := range paths {
		if filepath.Base(p) != LogFileName {
			t.Errorf("candidate %q does not end in %s", p, LogFileName)
		}
	}
}
