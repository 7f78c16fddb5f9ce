package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var accountPassword string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage user accounts",
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRegister,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Verify credentials for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountLogin,
}

func init() {
	accountRegisterCmd.Flags().StringVarP(&accountPassword, "password", "p", "", "account password")
	accountLoginCmd.Flags().StringVarP(&accountPassword, "password", "p", "", "account password")
	accountCmd.AddCommand(accountRegisterCmd)
	accountCmd.AddCommand(accountLoginCmd)
	rootCmd.AddCommand(accountCmd)
}

func runAccountRegister(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errors.New("account service not configured")
	}

	user, err := accountService.Register(cmd.Context(), args[0], accountPassword)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Printf("Registered %s (id %s)\n", user.Username, user.ID)
	return nil
}

func runAccountLogin(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errors.New("account service not configured")
	}

	user, err := accountService.Login(cmd.Context(), args[0], accountPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s (id %s)\n", user.Username, user.ID)
	return nil
}
