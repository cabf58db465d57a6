// Package buildsys resolves the build backend that governs a Python project.
//
// A project declares its backend in the [build-system] table of
// pyproject.toml:
//
//	[build-system]
//	requires = ["flit_core>=3.2"]
//	build-backend = "flit_core.buildapi"
//	backend-path = ["_build"]
//
// [Resolve] reads that table and fills in the legacy setuptools defaults for
// any field the project left out. The fallback applies only when the file is
// missing or has no [build-system] table; a file that fails to decode is an
// error and is returned as-is.
//
// Defaults are applied per field, independent of which backend was declared:
// a project declaring only build-backend = "flit_core.buildapi" still gets
// requires = ["setuptools", "wheel"].
package buildsys
