package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newUserRegisterCmd())
	cmd.AddCommand(newUserLoginCmd())
	cmd.AddCommand(newUserLogoutCmd())
	cmd.AddCommand(newUserDeregisterCmd())

	return cmd
}

func newUserRegisterCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"username": user,
				"password": DigestPassword(pass),
			}
			var result RegisterResult

			if err := client.Put("/fdsaas/api/register", payload, false, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newUserLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"username": user,
				"password": DigestPassword(pass),
			}
			var result AuthResult

			if err := client.Post("/fdsaas/api/login", payload, false, &result); err != nil {
				return err
			}

			if err := cfg.SaveCredentials(result.UserID, result.JWTToken); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			client.SetCredentials(result.UserID, result.JWTToken)

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newUserLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/fdsaas/api/logout", nil, true, nil); err != nil {
				return err
			}

			if err := cfg.ClearCredentials(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newUserDeregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deregister",
		Short: "Delete the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/fdsaas/api/deregister", nil, true, nil); err != nil {
				return err
			}

			if err := cfg.ClearCredentials(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Account deleted")
			return nil
		},
	}
}
