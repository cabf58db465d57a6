package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateProjectDir checks that dir names an existing directory.
// A missing project directory is a caller error; the extraction pipeline
// itself assumes the directory exists.
func ValidateProjectDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return New(ErrCodeInvalidPath, "project directory cannot be empty")
	}

	for _, r := range dir {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "project directory contains invalid characters")
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Wrap(ErrCodeFileNotFound, err, "project directory not found: %s", dir)
		}
		return Wrap(ErrCodeInvalidPath, err, "cannot access project directory: %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "not a directory: %s", dir)
	}
	return nil
}

// ValidateDistInfoName validates the directory name reported by a
// prepare-metadata hook. The name must be a single path element so that it
// resolves inside the destination directory handed to the hook.
//
// Validation rules:
//   - Name cannot be empty or blank
//   - No control characters or null bytes
//   - No path separators (/ or \)
//   - Not "." or ".."
func ValidateDistInfoName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeMetadataContract, "backend reported an empty metadata directory name")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeMetadataContract, "metadata directory name contains invalid characters: %q", name)
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeMetadataContract, "metadata directory name must be a basename: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeMetadataContract, "metadata directory name cannot be %q", name)
	}

	return nil
}

// ValidateFormat checks an output format against the supported set.
func ValidateFormat(format string, supported ...string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (available: %s)", format, strings.Join(supported, ", "))
}
