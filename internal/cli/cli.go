// Package cli implements the distmeta command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/distmeta/pkg/buildinfo"
	"github.com/matzehuels/distmeta/pkg/errors"
	"github.com/matzehuels/distmeta/pkg/extract"
	"github.com/matzehuels/distmeta/pkg/hooks"
	"github.com/matzehuels/distmeta/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for config files and display.
	appName = "distmeta"

	// Output formats.
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var formats = []string{formatText, formatJSON, formatYAML}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	config  *viper.Viper
	stderr  io.Writer
	verbose bool

	// caller overrides the hook caller built from configuration.
	caller hooks.Caller
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: newConfig(),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "distmeta extracts metadata from Python source projects",
		Long: `distmeta reads the build system declared in pyproject.toml, asks the build
backend to prepare distribution metadata without building a wheel, and
collects the requirements listed in requirements*.txt files.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringP("format", "f", formatText, "output format: text, json or yaml")
	flags.String("python", hooks.DefaultPython, "Python interpreter used to run build backends")
	flags.String("tempdir", "", "parent directory for scratch directories (default: system temp dir)")
	flags.String("log-file", "", "also write logs to this file (rotated)")
	c.bindFlags(flags)

	root.AddCommand(c.backendCommand())
	root.AddCommand(c.metadataCommand())
	root.AddCommand(c.requirementsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup reads configuration and finalizes logging before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if err := c.readConfig(); err != nil {
		return err
	}

	level, err := c.logLevel()
	if err != nil {
		return err
	}
	c.SetLogLevel(level)

	if path := c.config.GetString(keyLogFile); path != "" {
		c.Logger.SetOutput(io.MultiWriter(c.stderr, c.logFile(path)))
	}

	if c.verbose {
		observability.SetExtractHooks(&logHooks{logger: c.Logger})
		observability.SetScanHooks(&logHooks{logger: c.Logger})
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Extractor Factory
// =============================================================================

// newExtractor creates an extractor configured from flags and config.
func (c *CLI) newExtractor() *extract.Extractor {
	caller := c.caller
	if caller == nil {
		sub := hooks.NewSubprocess(c.config.GetString(keyPython))
		sub.Logger = c.Logger
		caller = sub
	}
	return extract.New(caller,
		extract.WithTempDir(c.config.GetString(keyTempDir)),
		extract.WithLogger(c.Logger),
	)
}

// outputFormat returns the validated --format value.
func (c *CLI) outputFormat() (string, error) {
	format := c.config.GetString(keyFormat)
	if err := errors.ValidateFormat(format, formats...); err != nil {
		return "", err
	}
	return format, nil
}
