package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/strodow/plucky/internal/config"
	"github.com/strodow/plucky/internal/render"
	"github.com/strodow/plucky/internal/system"
	"github.com/strodow/plucky/internal/template"
)

// commandContext carries the lazily-loaded configuration and the
// shared logger into each subcommand.
type commandContext struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func (c *commandContext) ensure() error {
	if c.cfg != nil {
		return nil
	}
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = newLogger(cfg.LogLevel)
	slog.SetDefault(c.log)
	system.InitResourceLimits(c.log)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// templates loads the configured collections, falling back to the
// built-in set when no file is configured or present.
func (c *commandContext) templates() (*template.Collections, error) {
	if c.cfg.Templates.Path == "" {
		return template.Builtin(), nil
	}
	coll, err := template.Load(c.cfg.Templates.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("template file missing, using built-ins", "path", c.cfg.Templates.Path)
			return template.Builtin(), nil
		}
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return coll, nil
}

func (c *commandContext) fonts() (*render.FontRegistry, error) {
	fonts, err := render.NewFontRegistry()
	if err != nil {
		return nil, err
	}
	if dir := c.cfg.Templates.FontsDir; dir != "" {
		if err := fonts.LoadDir(dir, c.log); err != nil {
			c.log.Warn("font directory not loaded", "dir", dir, "error", err)
		}
	}
	return fonts, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "plucky",
		Short:         "Lyric presentation output engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "configuration file path")

	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newTakeCommand(ctx))
	rootCmd.AddCommand(newDevicesCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newQRCommand(ctx))

	return rootCmd
}
