package tests

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	romsArchiveURL = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`

	// RomsDirEnv overrides the test roms location, for example with an
	// existing checkout of nes-test-roms.
	RomsDirEnv = "YANE_TEST_ROMS"
)

var roms struct {
	sync.Mutex
	dir string
}

// RomsDir returns the directory holding the nes-test-roms collection,
// downloading it next to this file on first use. Tests needing it are
// skipped in short mode.
func RomsDir(tb testing.TB) string {
	tb.Helper()
	if testing.Short() {
		tb.Skip("test roms not available in short mode")
	}

	roms.Lock()
	defer roms.Unlock()

	if roms.dir != "" {
		return roms.dir
	}
	if dir := os.Getenv(RomsDirEnv); dir != "" {
		roms.dir = dir
		return dir
	}

	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "nes-test-roms")
	if _, err := os.Stat(dir); err != nil {
		tb.Logf("%s not found, downloading test roms", dir)
		if err := fetchRoms(dir); err != nil {
			tb.Fatalf("failed to fetch test roms: %v", err)
		}
	}
	roms.dir = dir
	return dir
}

// RomPath returns the path of a file of the test roms collection, skipping
// the test if it's missing.
func RomPath(tb testing.TB, elem ...string) string {
	tb.Helper()

	path := filepath.Join(append([]string{RomsDir(tb)}, elem...)...)
	if _, err := os.Stat(path); err != nil {
		tb.Skipf("test rom not available: %v", err)
	}
	return path
}

func fetchRoms(dest string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, romsArchiveURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", romsArchiveURL, resp.Status)
	}

	tmpf, err := os.CreateTemp("", "yane-test-roms-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmpf.Name())
	defer tmpf.Close()

	if _, err := io.Copy(tmpf, resp.Body); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	// Extract in a temporary directory first so that an interrupted run
	// doesn't leave a partial collection behind.
	tmpdir, err := os.MkdirTemp(filepath.Dir(dest), ".nes-test-roms-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpdir)

	if err := unzip(tmpf.Name(), tmpdir); err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	return os.Rename(tmpdir, dest)
}

// unzip extracts an archive into dest, dropping the top-level directory of
// each entry.
func unzip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		_, name, ok := strings.Cut(f.Name, "/")
		if !ok || name == "" {
			continue
		}
		path := filepath.Join(dest, filepath.FromSlash(name))
		if !strings.HasPrefix(path, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("%s: illegal file path", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, path); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
