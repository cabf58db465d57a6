package buildsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

const (
	// DeclarationFile is the project declaration read from the project root.
	DeclarationFile = "pyproject.toml"

	// DefaultBackend is the legacy setuptools entry point used when a
	// project does not name a backend.
	DefaultBackend = "setuptools.build_meta:__legacy__"
)

var (
	// ErrNoDeclaration is returned by Load when pyproject.toml is absent.
	ErrNoDeclaration = errors.New("no " + DeclarationFile)

	// ErrNoBuildSystem is returned by Load when pyproject.toml has no
	// [build-system] table.
	ErrNoBuildSystem = errors.New(DeclarationFile + " has no [build-system] table")
)

// DefaultRequires returns the legacy build toolchain requirements.
// A fresh slice is returned on every call.
func DefaultRequires() []string {
	return []string{"setuptools", "wheel"}
}

// BuildSystem describes the backend of a project.
//
// BackendPath is nil unless the project declared backend-path. A declared
// empty array is kept as a non-nil empty slice. A declared empty
// build-backend string is kept as well; only an absent key is defaulted.
type BuildSystem struct {
	BuildBackend string   `toml:"build-backend" json:"build-backend" yaml:"build-backend"`
	BackendPath  []string `toml:"backend-path" json:"backend-path,omitempty" yaml:"backend-path,omitempty"`
	Requires     []string `toml:"requires" json:"requires" yaml:"requires"`

	// backendDeclared is set by Load when the build-backend key exists.
	backendDeclared bool
}

// InTree reports whether the backend is loaded from the project tree.
func (b *BuildSystem) InTree() bool {
	return b.BackendPath != nil
}

// WithDefaults returns a copy of b with missing fields filled in.
// BuildBackend defaults to [DefaultBackend] and Requires to
// [DefaultRequires]. BackendPath is never defaulted. b is not modified.
//
// BuildBackend counts as missing when it is empty and was not declared in
// the file b was loaded from.
func (b BuildSystem) WithDefaults() *BuildSystem {
	out := &BuildSystem{
		BuildBackend:    b.BuildBackend,
		BackendPath:     slices.Clone(b.BackendPath),
		Requires:        slices.Clone(b.Requires),
		backendDeclared: b.backendDeclared,
	}
	if out.BuildBackend == "" && !out.backendDeclared {
		out.BuildBackend = DefaultBackend
	}
	if out.Requires == nil {
		out.Requires = DefaultRequires()
	}
	return out
}

type pyproject struct {
	BuildSystem *BuildSystem `toml:"build-system"`
}

// Load reads the [build-system] table of dir/pyproject.toml as declared,
// without defaults.
//
// A missing file yields an error matching both [ErrNoDeclaration] and
// [fs.ErrNotExist]; a missing table yields [ErrNoBuildSystem]. Decode
// errors from the TOML parser are returned unmodified.
func Load(dir string) (*BuildSystem, error) {
	data, err := os.ReadFile(filepath.Join(dir, DeclarationFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrNoDeclaration, err)
	}
	if err != nil {
		return nil, err
	}

	var doc pyproject
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("build-system") {
		return nil, ErrNoBuildSystem
	}

	bs := doc.BuildSystem
	if bs == nil {
		bs = &BuildSystem{}
	}
	bs.backendDeclared = md.IsDefined("build-system", "build-backend")
	if md.IsDefined("build-system", "backend-path") && bs.BackendPath == nil {
		bs.BackendPath = []string{}
	}
	if md.IsDefined("build-system", "requires") && bs.Requires == nil {
		bs.Requires = []string{}
	}
	return bs, nil
}

// Resolve returns the build system for the project in dir.
//
// When pyproject.toml is missing, or has no [build-system] table, Resolve
// starts from an empty descriptor. Every other error, including TOML syntax
// and type errors, is returned to the caller. The result always has
// BuildBackend and Requires set.
func Resolve(dir string) (*BuildSystem, error) {
	bs, _, err := ResolveFallback(dir)
	return bs, err
}

// ResolveFallback is like [Resolve] and also reports whether the
// declaration was absent and the defaults were used.
func ResolveFallback(dir string) (*BuildSystem, bool, error) {
	bs, err := Load(dir)
	fallback := Fallback(err)
	switch {
	case fallback:
		bs = &BuildSystem{}
	case err != nil:
		return nil, false, err
	}
	return bs.WithDefaults(), fallback, nil
}

// Fallback reports whether err is one of the absence conditions that make
// [Resolve] fall back to defaults.
func Fallback(err error) bool {
	return errors.Is(err, ErrNoDeclaration) || errors.Is(err, ErrNoBuildSystem)
}
