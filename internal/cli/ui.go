package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/distmeta/pkg/buildsys"
	"github.com/matzehuels/distmeta/pkg/metadata"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey    = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconError = "✗"
	iconInfo  = "›"
	iconArrow = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Domain Output
// =============================================================================

// printBuildSystem prints a resolved build system.
func printBuildSystem(w io.Writer, bs *buildsys.BuildSystem) {
	printKeyValue(w, "build-backend", bs.BuildBackend)
	printKeyValue(w, "requires", strings.Join(bs.Requires, ", "))
	if bs.InTree() {
		printKeyValue(w, "backend-path", strings.Join(bs.BackendPath, ", "))
	}
}

// printMetadata prints the headers of md as a table in document order.
// Repeated headers appear once per value.
func printMetadata(w io.Writer, md *metadata.Metadata) {
	title := md.Name()
	if v := md.Version(); v != "" {
		title += " " + v
	}
	fmt.Fprintln(w, StyleTitle.Render(title))

	fields := md.Fields()
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Name, f.Value})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Field", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Fprintln(w, t.Render())

	if body := strings.TrimSpace(md.Body); body != "" {
		printDetail(w, "%d lines of description omitted", strings.Count(body, "\n")+1)
	}
}

// printPackage prints the summary view of a metadata document.
func printPackage(w io.Writer, p *metadata.Package) {
	fmt.Fprintln(w, StyleTitle.Render(p.Name+" "+p.Version))
	if p.Summary != "" {
		printDetail(w, "%s", p.Summary)
	}
	for _, kv := range [][2]string{
		{"license", p.License},
		{"author", p.Author},
		{"home-page", p.HomePage},
		{"requires-python", p.RequiresPython},
	} {
		if kv[1] != "" {
			printKeyValue(w, kv[0], kv[1])
		}
	}
	if len(p.RequiresDist) > 0 {
		printKeyValue(w, "requires-dist", "")
		for _, r := range p.RequiresDist {
			printFile(w, r)
		}
	}
	if len(p.ProvidesExtra) > 0 {
		printKeyValue(w, "provides-extra", strings.Join(p.ProvidesExtra, ", "))
	}
}

// printRequirements prints one requirement per line.
func printRequirements(w io.Writer, reqs []string) {
	for _, r := range reqs {
		fmt.Fprintln(w, r)
	}
}

// printFile prints an indented list entry.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}
