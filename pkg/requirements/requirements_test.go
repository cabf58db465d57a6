package requirements

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/distmeta/pkg/observability"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScan_TrimsAndDropsBlank(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "foo==1.0\n\n  bar>=2  \n# comment\n",
	})

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{"foo==1.0", "bar>=2", "# comment"}
	if !slices.Equal(got, want) {
		t.Errorf("Scan = %q, want %q", got, want)
	}
}

func TestParse_LineBreaks(t *testing.T) {
	long := strings.Repeat("x", 2<<20)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"vertical tab and form feed", "a\vb\fc", []string{"a", "b", "c"}},
		{"unicode separators", "a\u2028b\u2029c\u0085d", []string{"a", "b", "c", "d"}},
		{"file separator", "a\x1cb", []string{"a", "b"}},
		{"unit separator is trimmed", "\x1fa\x1f\n", []string{"a"}},
		{"no final newline", "a", []string{"a"}},
		{"only blanks", " \n\t\r\n", nil},
		{"line longer than a scanner buffer", long + "\nb", []string{long, "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("parse = %d lines, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestScan_PassesThroughOptions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "-r base.txt\n--index-url https://example.com/simple\n-e ./local\r\ngit+https://github.com/user/repo.git\n\t\n",
	})

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{
		"-r base.txt",
		"--index-url https://example.com/simple",
		"-e ./local",
		"git+https://github.com/user/repo.git",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Scan = %q, want %q", got, want)
	}
}

func TestScan_MultipleFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt":     "a\n",
		"requirements-dev.txt": "b\n",
	})

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != 2 || !slices.Contains(got, "a") || !slices.Contains(got, "b") {
		t.Errorf("Scan = %q, want a and b", got)
	}
}

func TestScan_NoDeduplication(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt":     "a\nc\n",
		"requirements-dev.txt": "a\nb\n",
	})

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Scan = %q, want 4 entries", got)
	}

	// Each file's lines stay contiguous and ordered.
	joined := strings.Join(got, ",")
	if !strings.Contains(joined, "a,c") || !strings.Contains(joined, "a,b") {
		t.Errorf("Scan = %q, file contents not contiguous", got)
	}
}

func TestScan_IgnoresOtherFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt":     "a\n",
		"requirements.in":      "b\n",
		"dev-requirements.txt": "c\n",
		"requirements.txt.bak": "d\n",
		"constraints.txt":      "e\n",
	})
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "requirements.txt"), []byte("f\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "requirements-dir.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !slices.Equal(got, []string{"a"}) {
		t.Errorf("Scan = %q, want [a]", got)
	}
}

func TestScan_Empty(t *testing.T) {
	got, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Scan = %#v, want empty non-nil slice", got)
	}
}

func TestScan_ReadErrorPropagates(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("file permissions are not enforced")
	}
	dir := writeFiles(t, map[string]string{
		"requirements.txt":     "a\n",
		"requirements-dev.txt": "b\n",
	})
	if err := os.Chmod(filepath.Join(dir, "requirements-dev.txt"), 0); err != nil {
		t.Fatal(err)
	}

	got, err := Scan(dir)
	if !os.IsPermission(err) {
		t.Errorf("Scan = %q, %v; want permission error", got, err)
	}
}

func TestScan_Cancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"requirements.txt": "a\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var s Scanner
	if _, err := s.Scan(ctx, dir); err != context.Canceled {
		t.Errorf("Scan error = %v, want context.Canceled", err)
	}
}

func TestScan_EmitsHooks(t *testing.T) {
	defer observability.Reset()
	rec := &recordingHooks{}
	observability.SetScanHooks(rec)

	dir := writeFiles(t, map[string]string{
		"requirements.txt":      "a\nb\n",
		"requirements-test.txt": "c\n",
	})
	if _, err := Scan(dir); err != nil {
		t.Fatal(err)
	}

	if len(rec.files) != 2 {
		t.Errorf("OnScanFile called %d times, want 2", len(rec.files))
	}
	if rec.doneFiles != 2 || rec.doneEntries != 3 {
		t.Errorf("OnScanComplete(files=%d, entries=%d), want (2, 3)", rec.doneFiles, rec.doneEntries)
	}
}

func TestFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt":      "",
		"requirements_prod.txt": "",
		"setup.py":              "",
	})

	files, err := Files(dir)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "requirements.txt"),
		filepath.Join(dir, "requirements_prod.txt"),
	}
	if !slices.Equal(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestFiles_GlobCharactersInDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj[1]")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Scan(dir)
	if err != nil || !slices.Equal(got, []string{"a"}) {
		t.Errorf("Scan = %q, %v; want [a]", got, err)
	}
}

type recordingHooks struct {
	observability.NoopScanHooks
	files       []string
	doneFiles   int
	doneEntries int
}

func (r *recordingHooks) OnScanFile(_ context.Context, path string) {
	r.files = append(r.files, path)
}

func (r *recordingHooks) OnScanComplete(_ context.Context, _ string, files, entries int, _ error) {
	r.doneFiles, r.doneEntries = files, entries
}
