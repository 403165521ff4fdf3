package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crashtools/socorro-cli/core/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token stored in the system keychain",
	Long: `Manage the Socorro API token stored in the system keychain.

Tokens only raise rate limits. Create one at
https://crash-stats.mozilla.org/api/tokens/ and make sure it has NO
permissions attached, so the server can never return protected data.

Run 'socorro-cli auth status' to check if a token is stored.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token in the system keychain (prompts for the token)",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the API token from the system keychain",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check if an API token is stored",
	RunE:  runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	if auth.HasToken() {
		fmt.Print("A token is already stored. Replace it? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	fmt.Print("Enter your Socorro API token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		fmt.Println("No token provided. Cancelled.")
		return nil
	}

	if err := auth.Store(token); err != nil {
		return err
	}
	fmt.Println("Token stored in system keychain.")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	if !auth.HasToken() {
		fmt.Println("No token stored.")
		return nil
	}
	if err := auth.Delete(); err != nil {
		return err
	}
	fmt.Println("Token removed from system keychain.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	status := auth.Status()
	switch {
	case status.HasToken:
		fmt.Println("Token is stored in system keychain.")
	case status.Err != nil:
		fmt.Printf("Keychain error: %v\n", status.Err)
		reportTokenFileFallback()
	default:
		fmt.Println("No token stored in keychain.")
		reportTokenFileFallback()
	}
	return nil
}

func reportTokenFileFallback() {
	path := os.Getenv(auth.TokenPathEnvVar)
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s is set and the file exists (headless fallback).\n", auth.TokenPathEnvVar)
	} else {
		fmt.Printf("%s is set but the file does not exist: %s\n", auth.TokenPathEnvVar, path)
	}
}
