package main

import (
	"fmt"
	"strings"

	"github.com/Joseda-hg/lazyboard/internal/auth"
	"github.com/Joseda-hg/lazyboard/internal/config"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login TOKEN",
	Short: "Store the access token used for the task API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := strings.TrimSpace(args[0])
		if err := (auth.Gate{Required: true}).Check(value); err != nil {
			return err
		}
		cfg.Token = value
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", cfgPath)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Token = ""
		return config.Save(cfgPath, cfg)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Show where to create an account",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		target := cfg.RegisterURL
		if target == "" {
			target = cfg.BaseURL
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Create an account at %s, then run: lazyboard login TOKEN\n", target)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd)
}
