package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/distmeta/pkg/errors"
	"github.com/matzehuels/distmeta/pkg/metadata"
)

type metadataOpts struct {
	summary bool // print the Package summary instead of every header
}

// metadataCommand creates the metadata command, which asks the project's
// build backend to prepare metadata and prints the result.
func (c *CLI) metadataCommand() *cobra.Command {
	var opts metadataOpts

	cmd := &cobra.Command{
		Use:   "metadata <dir>",
		Short: "Extract distribution metadata from a Python project",
		Long: `Extract distribution metadata from the Python project in <dir>.

The build backend's prepare_metadata_for_build_wheel hook runs in an isolated
scratch directory that is removed afterwards. Nothing is built or installed,
but the backend and its requirements must already be importable by the
configured Python interpreter.`,
		Example: `  distmeta metadata .
  distmeta metadata ./project --format json --summary
  distmeta metadata ./project --python .venv/bin/python`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			dir := args[0]
			if err := errors.ValidateProjectDir(dir); err != nil {
				return err
			}

			md, err := c.extractMetadata(cmd.Context(), dir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case format == formatText && opts.summary:
				printPackage(w, md.Package())
				return nil
			case format == formatText:
				printMetadata(w, md)
				return nil
			case opts.summary:
				return writeStructured(w, format, md.Package())
			}
			return writeStructured(w, format, md)
		},
	}

	cmd.Flags().BoolVarP(&opts.summary, "summary", "s", false, "print a summary instead of every header")
	return cmd
}

func (c *CLI) extractMetadata(ctx context.Context, dir string) (*metadata.Metadata, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var md *metadata.Metadata
	err := c.spin(ctx, "Preparing metadata", func(ctx context.Context) error {
		var err error
		md, err = c.newExtractor().Extract(ctx, dir)
		return err
	})
	if err != nil {
		return nil, err
	}

	prog.done("Extracted " + md.Name() + " " + md.Version())
	return md, nil
}

// spin runs fn behind a spinner unless verbose logging would interleave
// with it.
func (c *CLI) spin(ctx context.Context, message string, fn func(context.Context) error) error {
	if c.verbose {
		return fn(ctx)
	}
	return withSpinner(ctx, c.stderr, message, fn)
}
