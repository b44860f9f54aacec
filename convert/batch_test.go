package convert

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"svgready/css"
)

const (
	iconA = `<svg viewBox="0 0 1 1"><rect width="1" height="1"/></svg>`
	iconB = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<svg viewBox=\"0 0 2 2\"><circle r=\"1\"/></svg>\n"
	iconC = `<svg><path d="M0 0L1 1"/></svg>`
	iconX = `<svg><rect onclick/></svg>`
)

// makeSourceTree creates directory with mixed content and returns its path.
func makeSourceTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.svg":     iconA,
		"sub/b.svg": iconB,
		"bad.svg":   iconX,
		"notes.txt": "not an icon",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeZip(t, filepath.Join(dir, "pack.zip"), map[string]string{
		"c.svg":        iconC,
		"inner/d.svg":  iconA,
		"fake.svg":     string(pngHead),
		"inner/readme": "text",
		"inner/e.svg":  "",
	})
	return dir
}

func selectorsOf(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	var selectors []string
	for _, r := range css.NewParser(nil).Parse(data).Rules {
		selectors = append(selectors, r.Selector)
	}
	return selectors
}

func TestBatch_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	logs := observeLogs(env)

	src := makeSourceTree(t)
	dst := filepath.Join(t.TempDir(), "out", "icons.css")

	if err := runCommand(ctx, Batch, BatchFlags(), src, dst); err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	got := selectorsOf(t, dst)
	want := []string{".icon-a", ".icon-b", ".icon-c", ".icon-d"}
	if !slices.Equal(got, want) {
		t.Errorf("selectors = %v, want %v", got, want)
	}

	summary := logs.FilterMessage("Some sources were not converted").All()
	if len(summary) != 1 {
		t.Fatalf("expected failure summary, got %d", len(summary))
	}
	fields := summary[0].ContextMap()
	// bad.svg, fake.svg (png) and inner/e.svg (empty)
	if fields["failed"] != int64(3) || fields["total"] != int64(7) {
		t.Errorf("summary = %v", fields)
	}
}

func TestBatch_Sources(t *testing.T) {
	src := makeSourceTree(t)

	tests := []struct {
		name    string
		source  string
		want    []string
		wantErr string
	}{
		{"single file", filepath.Join(src, "sub", "b.svg"), []string{".icon-b"}, ""},
		{"archive", filepath.Join(src, "pack.zip"), []string{".icon-c", ".icon-d"}, ""},
		{"path in archive", filepath.Join(src, "pack.zip", "inner"), []string{".icon-d"}, ""},
		{"file in archive", filepath.Join(src, "pack.zip", "c.svg"), []string{".icon-c"}, ""},
		{"only failures", filepath.Join(src, "bad.svg"), nil, "unable to convert any of 1 sources"},
		{"not svg", filepath.Join(src, "notes.txt"), nil, "not recognized as SVG"},
		{"nothing in archive", filepath.Join(src, "pack.zip", "missing"), nil, "no SVG sources found"},
		{"missing", filepath.Join(src, "missing", "x.svg"), nil, "input source was not found"},
		{"file with tail", filepath.Join(src, "a.svg", "x.svg"), nil, "input source was not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestEnv(t)
			dst := filepath.Join(t.TempDir(), "icons.css")

			err := runCommand(ctx, Batch, BatchFlags(), "--property", "mask", tt.source, dst)
			if len(tt.wantErr) > 0 {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Batch() error = %v, want %q", err, tt.wantErr)
				}
				if _, err := os.Stat(dst); !os.IsNotExist(err) {
					t.Error("stylesheet written on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Batch() error = %v", err)
			}
			if got := selectorsOf(t, dst); !slices.Equal(got, tt.want) {
				t.Errorf("selectors = %v, want %v", got, tt.want)
			}

			data, _ := os.ReadFile(dst)
			if !strings.Contains(string(data), "-webkit-mask-image: url(\"data:image/svg+xml,") {
				t.Errorf("mask property not used:\n%s", data)
			}
		})
	}
}

func TestBatch_Destination(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "new.svg"), []byte(iconA), 0644); err != nil {
		t.Fatal(err)
	}
	existing := ".icon-old {\n  background-image: url(\"x\");\n}\n"

	tests := []struct {
		name    string
		flags   []string
		want    []string
		wantErr bool
	}{
		{"exists", nil, nil, true},
		{"overwrite", []string{"--overwrite"}, []string{".icon-new"}, false},
		{"merge", []string{"--merge"}, []string{".icon-new", ".icon-old"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestEnv(t)
			dst := filepath.Join(t.TempDir(), "icons.css")
			if err := os.WriteFile(dst, []byte(existing), 0644); err != nil {
				t.Fatal(err)
			}

			err := runCommand(ctx, Batch, BatchFlags(), append(tt.flags, src, dst)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Batch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				data, _ := os.ReadFile(dst)
				if string(data) != existing {
					t.Error("existing stylesheet was modified")
				}
				return
			}
			if got := selectorsOf(t, dst); !slices.Equal(got, tt.want) {
				t.Errorf("selectors = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatch_ForceZipCodePage(t *testing.T) {
	name, err := charmap.CodePage866.NewEncoder().String("звезда.svg")
	if err != nil {
		t.Fatal(err)
	}
	arc := filepath.Join(t.TempDir(), "old.zip")
	f, err := os.Create(arc)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	fw, err := w.CreateHeader(&zip.FileHeader{Name: name, NonUTF8: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(iconC)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	ctx, env := setupTestEnv(t)
	dst := filepath.Join(t.TempDir(), "icons.css")
	if err := runCommand(ctx, Batch, BatchFlags(), "--force-zip-cp", "IBM866", arc, dst); err != nil {
		t.Fatalf("Batch() error = %v", err)
	}
	if env.CodePage == nil {
		t.Error("code page was not set")
	}
	if got := selectorsOf(t, dst); !slices.Equal(got, []string{".icon-zvezda"}) {
		t.Errorf("selectors = %v", got)
	}
}

func TestBatch_Cancelled(t *testing.T) {
	ctx, env := setupTestEnv(t)
	cctx, cancel := context.WithCancel(ctx)
	cancel()

	b := &batch{opts: env.Options(), log: env.Log}
	if err := b.process(cctx, makeSourceTree(t)); err != context.Canceled {
		t.Errorf("process() error = %v, want context.Canceled", err)
	}
	if len(b.done) != 0 {
		t.Errorf("converted %d sources after cancellation", len(b.done))
	}
}
