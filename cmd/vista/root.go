package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vista/internal/config"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vista",
	Short: "Vista navigates 360° virtual tours",
	Long: `Vista plays scene-based virtual tours: it keeps each viewer's back-navigation
history and overlay state while the tour itself is edited.

A tour is either a single document (.json, .yaml, .toml) or a directory of
Markdown scene files with frontmatter.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		logger = newLogger(cfg.Log)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./vista.{yaml,toml,json} if present)")
	flags.StringP("tour", "t", ".", "Tour document or directory of scene files")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("asset-base", "", "Base URL or directory for relative image and audio paths")
	flags.String("store", "file", "Session store: memory, file or redis")
	flags.String("session-dir", ".vista/sessions", "Directory of the file session store")
	flags.Duration("session-ttl", 0, "Session expiration for the redis store (default 30m)")
	flags.String("redis-addr", "localhost:6379", "Redis address")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database")
}
