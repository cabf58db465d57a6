// Package requirements collects the entries of requirements*.txt files at a
// project root.
//
// No requirements-file grammar is applied: every non-blank line, trimmed,
// is an entry. Lines break where Python's str.splitlines breaks them
// (\n, \r\n, \r, \v, \f and the Unicode line separators) and have no
// length limit. Comments ("# pinned for CI") and options ("-r base.txt")
// pass through verbatim, and duplicates are kept.
package requirements

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/distmeta/pkg/observability"
)

// Pattern matches requirement list files directly under the project root.
const Pattern = "requirements*.txt"

// Scanner reads requirement lists. The zero value is ready to use.
type Scanner struct {
	Logger *log.Logger // Optional; logs each file read at info level
}

// Scan is a convenience wrapper around a zero Scanner.
func Scan(dir string) ([]string, error) {
	var s Scanner
	return s.Scan(context.Background(), dir)
}

// Files returns the requirement files directly under dir, in the order the
// directory listing yields them (os.ReadDir sorts by name). Directories
// whose names match the pattern are not files and are left out.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(Pattern, e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// Scan returns the entries of every requirements file under dir,
// concatenated file by file and line by line in order. A file that cannot
// be read fails the whole scan; its error is returned unmodified.
func (s *Scanner) Scan(ctx context.Context, dir string) (reqs []string, err error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		observability.Scan().OnScanComplete(ctx, dir, len(files), len(reqs), err)
	}()

	reqs = []string{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger().Info("Reading requirements", "file", path)
		observability.Scan().OnScanFile(ctx, path)

		lines, err := readFile(path)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, lines...)
	}
	return reqs, nil
}

func (s *Scanner) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// parse returns the trimmed, non-empty lines of r.
func parse(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, line := range strings.FieldsFunc(string(data), isLineBreak) {
		line = strings.TrimFunc(line, isSpace)
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result, nil
}

// isLineBreak reports the line boundaries of Python's str.splitlines.
// Blank lines are dropped anyway, so splitting on \r and \n separately
// also covers \r\n.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// isSpace matches Python's str.isspace, which adds the ASCII separators
// 0x1c-0x1f to unicode.IsSpace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
