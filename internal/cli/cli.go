package cli

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"wavnorm.click/internal/config"
	"wavnorm.click/internal/fs"
	"wavnorm.click/internal/pcm"
	"wavnorm.click/internal/reader"
	"wavnorm.click/internal/tracking"
)

const Version = "1.0.0"

// CLI wires the command tree to the decode pipeline
type CLI struct {
	rootCmd          *cobra.Command
	fs               afero.Fs
	configManager    *config.Manager
	registry         *reader.Registry
	historyDB        *sql.DB
	terminalDetector TerminalDetector
}

// NewCLI creates a CLI over the OS filesystem
func NewCLI() *CLI {
	return NewCLIWithFilesystem(fs.NewDefaultFactory().Production())
}

// NewCLIWithFilesystem creates a CLI over the given filesystem, used by
// tests with an in-memory filesystem
func NewCLIWithFilesystem(filesystem afero.Fs) *CLI {
	slog.Debug("creating new CLI instance")

	c := &CLI{
		fs:               filesystem,
		configManager:    config.NewManagerWithFilesystem(filesystem),
		registry:         reader.NewDefaultRegistry(),
		terminalDetector: &DefaultTerminalDetector{},
	}

	rootCmd := &cobra.Command{
		Use:           "wavnorm",
		Short:         "Normalize PCM audio into floating-point samples",
		Long:          "wavnorm decodes PCM audio files into per-channel floating-point sample values scaled to [-1.0, 1.0].",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(c.newInfoCommand())
	rootCmd.AddCommand(c.newExtractCommand())
	rootCmd.AddCommand(c.newPlayCommand())
	rootCmd.AddCommand(c.newHistoryCommand())

	c.rootCmd = rootCmd
	return c
}

// Run executes the CLI with the given arguments and I/O streams, returning
// the process exit code.
func (c *CLI) Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c.rootCmd.SetArgs(args[1:])
	c.rootCmd.SetIn(stdin)
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)

	defer c.closeHistory()

	if err := c.rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig resolves the effective configuration for a command: explicit
// file flag, then XDG discovery, then environment overrides. Logging is
// set up as a side effect so every command logs consistently.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = c.configManager.LoadFromFile(configFile)
	} else {
		cfg, err = c.configManager.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	cfg = c.configManager.ApplyEnvironmentOverrides(cfg)

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	c.setupLogging(cfg, cmd.ErrOrStderr())
	return cfg, nil
}

// setupLogging configures slog with optional rotated file logging
func (c *CLI) setupLogging(cfg *config.Config, stderrWriter io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn
	}

	writers := []io.Writer{stderrWriter}

	if cfg.FileLogging != nil && cfg.FileLogging.Enabled {
		logFilePath := c.configManager.ResolveLogFilePath(cfg.FileLogging.Filename)

		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			slog.Error("failed to create log directory", "path", logFilePath, "error", err)
		} else {
			writers = append(writers, &lumberjack.Logger{
				Filename:   logFilePath,
				MaxSize:    cfg.FileLogging.MaxSizeMB,
				MaxBackups: cfg.FileLogging.MaxBackups,
				MaxAge:     cfg.FileLogging.MaxAgeDays,
				Compress:   cfg.FileLogging.Compress,
			})
		}
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	slog.Debug("logging setup completed",
		"level", level.String(),
		"writers", len(writers))
}

// decodeFile runs the full pipeline for one file: container read, frame
// decode, optional history record.
func (c *CLI) decodeFile(cfg *config.Config, path string) (*pcm.AudioData, string, error) {
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}

	formatName := ""
	if formatReader := c.registry.DetectFormatWithContent(path, bytes.NewReader(content)); formatReader != nil {
		formatName = formatReader.FormatName()
	}

	format, payload, err := c.registry.ReadFile(path, bytes.NewReader(content))
	if err != nil {
		return nil, "", err
	}

	data, err := pcm.DecodeFrames(payload, format)
	if err != nil {
		return nil, "", err
	}

	c.recordDecode(cfg, path, formatName, data)
	return data, formatName, nil
}

// recordDecode appends to the history database when enabled. History
// failures are logged, never fatal: they must not break a decode that
// already succeeded.
func (c *CLI) recordDecode(cfg *config.Config, path, formatName string, data *pcm.AudioData) {
	if cfg.History == nil || !cfg.History.Enabled {
		return
	}

	db, err := c.openHistory(cfg)
	if err != nil {
		slog.Warn("failed to open history database", "error", err)
		return
	}

	if err := tracking.RecordDecode(db, path, formatName, data); err != nil {
		slog.Warn("failed to record decode", "error", err)
	}
}

func (c *CLI) openHistory(cfg *config.Config) (*sql.DB, error) {
	if c.historyDB != nil {
		return c.historyDB, nil
	}

	path := ""
	if cfg.History != nil {
		path = cfg.History.Path
	}

	db, err := tracking.NewDatabase(c.configManager.ResolveHistoryPath(path))
	if err != nil {
		return nil, err
	}

	c.historyDB = db
	return db, nil
}

func (c *CLI) closeHistory() {
	if c.historyDB != nil {
		c.historyDB.Close()
		c.historyDB = nil
	}
}
