package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/distmeta/pkg/errors"
	"github.com/matzehuels/distmeta/pkg/extract"
)

// inspectCommand creates the inspect command, which combines backend,
// metadata and requirements output for one project.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <dir>",
		Short: "Show build system, metadata and requirements of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			dir := args[0]
			if err := errors.ValidateProjectDir(dir); err != nil {
				return err
			}

			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			var report *extract.Report
			err = c.spin(ctx, "Inspecting "+dir, func(ctx context.Context) error {
				var err error
				report, err = c.newExtractor().Inspect(ctx, dir)
				return err
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Inspected %s %s", report.Metadata.Name(), report.Metadata.Version()))

			w := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(w, format, report)
			}
			printBuildSystem(w, report.BuildSystem)
			fmt.Fprintln(w)
			printMetadata(w, report.Metadata)
			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Requirements"))
			if len(report.Requirements) == 0 {
				printDetail(w, "none")
			}
			for _, r := range report.Requirements {
				printFile(w, r)
			}
			return nil
		},
	}
}
