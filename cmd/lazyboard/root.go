package main

import (
	"path/filepath"

	"github.com/Joseda-hg/lazyboard/internal/api"
	"github.com/Joseda-hg/lazyboard/internal/auth"
	"github.com/Joseda-hg/lazyboard/internal/board"
	"github.com/Joseda-hg/lazyboard/internal/config"
	"github.com/Joseda-hg/lazyboard/internal/logger"
	"github.com/Joseda-hg/lazyboard/internal/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lazyboard",
	Short: "Kanban board for a remote task API",
	Long: `lazyboard shows the tasks of a remote task API as a three column board
(To-Do, In Progress, Done) in the terminal.

Examples:
  # Open the board against the configured API
  lazyboard

  # Open the board against a local sandbox server
  lazyboard serve --addr :8080 &
  lazyboard --base-url http://localhost:8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: runBoard,
}

var (
	configPath  string
	baseURL     string
	token       string
	requireAuth bool
	logPath     string
	development bool
	screen      string

	cfg     config.Config
	cfgPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "task API base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "access token sent as a bearer token")
	rootCmd.PersistentFlags().BoolVar(&requireAuth, "require-auth", false, "require a token before showing the board")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "log file path")
	rootCmd.PersistentFlags().BoolVar(&development, "dev", false, "development logging")

	rootCmd.Flags().StringVar(&screen, "screen", "", "first screen: board, login or register")
}

// setup loads the config, applies flags on top and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		loaded.BaseURL = baseURL
	}
	if flags.Changed("token") {
		loaded.Token = token
	}
	if flags.Changed("require-auth") {
		loaded.RequireAuth = requireAuth
	}
	if flags.Changed("log") {
		loaded.LogPath = logPath
	}
	if flags.Changed("dev") {
		loaded.Development = development
	}
	if loaded.LogPath == "" {
		loaded.LogPath = filepath.Join(filepath.Dir(path), "lazyboard.log")
	}
	if loaded.Serve.DBPath == "" {
		loaded.Serve.DBPath = filepath.Join(filepath.Dir(path), "lazyboard.db")
	}

	cfg = loaded
	cfgPath = path

	opts := logger.Options{Development: cfg.Development, Path: cfg.LogPath}
	if cmd.Name() == "serve" {
		opts.Path = ""
	} else if err := config.EnsureDir(cfg.LogPath); err != nil {
		return err
	}
	return logger.Init(opts)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.Options{
		Connect:     connect,
		Token:       cfg.Token,
		Gate:        gate(),
		BaseURL:     cfg.BaseURL,
		RegisterURL: cfg.RegisterURL,
		SaveToken:   saveToken,
		Screen:      screen,
		Logger:      logger.L(),
	})
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func connect(token string) board.API {
	return api.New(cfg.BaseURL, api.WithToken(token))
}

func gate() auth.Gate {
	return auth.Gate{Required: cfg.RequireAuth}
}

func saveToken(value string) error {
	cfg.Token = value
	return config.Save(cfgPath, cfg)
}
