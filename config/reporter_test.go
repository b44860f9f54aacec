package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReportClose_WritesEntries(t *testing.T) {
	tmpDir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	logFile := filepath.Join(tmpDir, "run.log")
	if err := os.WriteFile(logFile, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	r.Store("final.log", logFile)
	r.Store("final.log", logFile) // same path is fine
	r.Store("missing.log", filepath.Join(tmpDir, "absent.log"))
	r.StoreData("input/a.svg", []byte("<svg/>"))
	r.StoreData("input/a.svg", []byte("<svg></svg>"))

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %s, want %s", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file put into report")
	}
	if files["input/a.svg"] != "<svg/>" {
		t.Errorf("input/a.svg = %q", files["input/a.svg"])
	}

	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "input/a.svg-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("got %d versioned entries, want 1", versioned)
	}
	if !strings.Contains(files["MANIFEST"], "<6 bytes>") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
}

func TestReportStore_ConflictPanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("final.log", "b.log")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if r.Name() != "" {
		t.Error("Name on nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
