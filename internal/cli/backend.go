package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/distmeta/pkg/buildsys"
	"github.com/matzehuels/distmeta/pkg/errors"
)

// backendCommand creates the backend command, which prints the build system
// a project resolves to.
func (c *CLI) backendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backend <dir>",
		Short: "Show the build backend a project resolves to",
		Long: `Show the build system declared in <dir>/pyproject.toml.

Projects without a pyproject.toml or without a [build-system] table use the
setuptools legacy backend. Missing fields are filled in individually.`,
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

			bs, fallback, err := buildsys.ResolveFallback(dir)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDeclaration, err, "read %s", buildsys.DeclarationFile)
			}

			w := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(w, format, bs)
			}
			printBuildSystem(w, bs)
			if fallback {
				printDetail(w, "no build-system declared, using defaults")
			}
			return nil
		},
	}
}
