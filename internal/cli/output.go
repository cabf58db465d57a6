package cli

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/distmeta/pkg/errors"
)

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "format %q is not structured", format)
}

// PrintError writes err to w the way commands report failures.
func PrintError(w io.Writer, err error) {
	printError(w, "%s", errors.UserMessage(err))
	var hookErr *errors.HookError
	if errors.As(err, &hookErr) && hookErr.ExitCode >= 0 {
		printDetail(w, "the build backend failed; rerun with --verbose for the full command")
	}
}
