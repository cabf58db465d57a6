package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/distmeta/pkg/errors"
	"github.com/matzehuels/distmeta/pkg/requirements"
)

// requirementsCommand creates the requirements command, which prints every
// non-empty line of the project's requirements*.txt files.
func (c *CLI) requirementsCommand() *cobra.Command {
	var listFiles bool

	cmd := &cobra.Command{
		Use:   "requirements <dir>",
		Short: "List requirements from requirements*.txt files",
		Long: `List the lines of every requirements*.txt file directly inside <dir>.

Lines are trimmed and blank lines dropped. Comments, options such as -r or
--index-url, and duplicates are passed through unchanged.`,
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

			w := cmd.OutOrStdout()
			if listFiles {
				files, err := requirements.Files(dir)
				if err != nil {
					return err
				}
				if format != formatText {
					return writeStructured(w, format, files)
				}
				printRequirements(w, files)
				return nil
			}

			scanner := requirements.Scanner{Logger: loggerFromContext(cmd.Context())}
			reqs, err := scanner.Scan(cmd.Context(), dir)
			if err != nil {
				return err
			}
			if format != formatText {
				return writeStructured(w, format, reqs)
			}
			if len(reqs) == 0 {
				printInfo(c.stderr, "No requirements found in %s", dir)
				return nil
			}
			printRequirements(w, reqs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listFiles, "files", false, "list the matched files instead of their contents")
	return cmd
}
