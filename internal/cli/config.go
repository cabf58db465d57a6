package cli

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/distmeta/pkg/errors"
	"github.com/matzehuels/distmeta/pkg/hooks"
)

const (
	configFileName   = appName + ".yaml"
	configFolderPath = "."

	envPrefix = "DISTMETA"

	keyFormat  = "format"
	keyPython  = "python"
	keyTempDir = "tempdir"

	keyLogFile       = "log.file"
	keyLogLevel      = "log.level"
	keyLogMaxSize    = "log.max_size"
	keyLogMaxBackups = "log.max_backups"
	keyLogMaxAge     = "log.max_age"
	keyLogCompress   = "log.compress"

	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"format":   keyFormat,
	"python":   keyPython,
	"tempdir":  keyTempDir,
	"log-file": keyLogFile,
}

// newConfig returns a viper instance with defaults and environment binding.
// Environment variables use the DISTMETA_ prefix with dots replaced by
// underscores, e.g. DISTMETA_LOG_LEVEL.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyFormat, formatText)
	v.SetDefault(keyPython, hooks.DefaultPython)
	v.SetDefault(keyTempDir, "")
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyLogMaxSize, defaultLogMaxSize)
	v.SetDefault(keyLogMaxBackups, defaultLogMaxBackups)
	v.SetDefault(keyLogMaxAge, defaultLogMaxAge)
	v.SetDefault(keyLogCompress, defaultLogCompress)
	return v
}

// bindFlags binds persistent flags so explicit flags override config values.
func (c *CLI) bindFlags(flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		_ = c.config.BindPFlag(key, flags.Lookup(name))
	}
}

// readConfig loads distmeta.yaml when present. A missing file is not an error.
func (c *CLI) readConfig() error {
	if err := c.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", configFileName)
	}
	c.Logger.Debug("Loaded config", "file", c.config.ConfigFileUsed())
	return nil
}

// logLevel returns the configured level. --verbose always selects debug.
func (c *CLI) logLevel() (log.Level, error) {
	if c.verbose {
		return LogDebug, nil
	}
	level, err := log.ParseLevel(c.config.GetString(keyLogLevel))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s", keyLogLevel)
	}
	return level, nil
}

// logFile returns a size-rotated writer for path.
func (c *CLI) logFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    c.config.GetInt(keyLogMaxSize),
		MaxBackups: c.config.GetInt(keyLogMaxBackups),
		MaxAge:     c.config.GetInt(keyLogMaxAge),
		Compress:   c.config.GetBool(keyLogCompress),
	}
}
