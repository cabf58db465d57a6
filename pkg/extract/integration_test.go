package extract

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/matzehuels/distmeta/pkg/hooks"
)

const inTreeBackend = `import os

def prepare_metadata_for_build_wheel(metadata_directory, config_settings=None):
    name = "intree-1.2.dist-info"
    os.makedirs(os.path.join(metadata_directory, name))
    with open(os.path.join(metadata_directory, name, "METADATA"), "w") as f:
        f.write("Metadata-Version: 2.1\nName: intree\nVersion: 1.2\n")
    return name
`

// requirePython skips unless an interpreter with pyproject_hooks is on PATH.
func requirePython(t *testing.T) string {
	t.Helper()
	python, err := exec.LookPath(hooks.DefaultPython)
	if err != nil {
		t.Skipf("%s not available", hooks.DefaultPython)
	}
	if err := exec.Command(python, "-c", "import pyproject_hooks").Run(); err != nil {
		t.Skip("pyproject_hooks not installed")
	}
	return python
}

func inTreeProject(t *testing.T) string {
	t.Helper()
	dir := newProject(t, "[build-system]\nrequires = []\nbuild-backend = \"backend\"\nbackend-path = [\"_build\"]\n")
	if err := os.Mkdir(filepath.Join(dir, "_build"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "_build", "backend.py"), []byte(inTreeBackend), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestExtract_InTreeBackend(t *testing.T) {
	python := requirePython(t)
	dir := inTreeProject(t)

	md, err := New(hooks.NewSubprocess(python)).Extract(context.Background(), dir)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if md.Name() != "intree" || md.Version() != "1.2" {
		t.Errorf("metadata = %s %s, want intree 1.2", md.Name(), md.Version())
	}
}

func TestGetMetadata(t *testing.T) {
	requirePython(t)

	md, err := GetMetadata(context.Background(), inTreeProject(t))
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if md.Name() != "intree" {
		t.Errorf("Name() = %q, want intree", md.Name())
	}
}
