package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "fdsctl",
		Short: "CLI tool for the flight dynamics API",
		Long: `fdsctl is a CLI tool for interacting with the flight dynamics JSON API.

It supports account management, session login/logout, and authenticated
TLE orbit propagation requests.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load saved session if not provided via flag/env
			if err := cfg.LoadCredentials(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.UserID, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: FDSAAS_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.UserID, "user-id", cfg.UserID, "User id (env: FDSAAS_USER_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: FDSAAS_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials-file", cfg.CredentialsFile, "Session file path (env: FDSAAS_CREDENTIALS_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newPropagateCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
