// Package hooks is the boundary to the component that invokes Python build
// backend hooks.
//
// distmeta does not speak the build-backend protocol itself. A [Caller]
// locates the backend (installed, or in-tree via backend-path), runs its
// prepare_metadata_for_build_wheel hook and reports the name of the
// metadata directory it created. [Subprocess] is the production Caller: it
// delegates to the pyproject_hooks package of a Python interpreter.
package hooks

import "context"

// PrepareMetadataHook is the hook name used in errors and logs.
const PrepareMetadataHook = "prepare_metadata_for_build_wheel"

// Request holds everything a Caller needs to run the hook once.
type Request struct {
	SourceDir    string   // Project directory the backend runs in
	BuildBackend string   // Dotted entry point, e.g. "flit_core.buildapi"
	BackendPath  []string // In-tree backend locations; nil for installed backends
	MetadataDir  string   // Destination directory for the .dist-info output
}

// Caller runs the prepare-metadata hook of a build backend.
type Caller interface {
	// PrepareMetadata runs the hook and returns the name of the directory it
	// created inside req.MetadataDir.
	PrepareMetadata(ctx context.Context, req Request) (string, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, req Request) (string, error)

// PrepareMetadata calls f(ctx, req).
func (f CallerFunc) PrepareMetadata(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
