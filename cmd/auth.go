package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jfmyers9/spindle/internal/config"
	"github.com/jfmyers9/spindle/internal/session"
	"github.com/spf13/cobra"
)

var authShowDialog bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize spindle with Spotify",
	Long: `Authorize spindle to use your Spotify account.

This command will guide you through the Spotify authorization code flow:
1. You'll be prompted to enter your Spotify client ID and secret
2. A browser URL will be provided for you to authorize the application
3. After authorizing, paste the URL you were redirected to
4. The resulting tokens are saved to ~/.local/share/spindle/tokens.db

Register the redirect URI shown below for your application at:
https://developer.spotify.com/dashboard`,
	RunE: runAuth,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the stored access token",
	Long:  `Exchange the stored refresh token for a new access token and save it.`,
	RunE:  runAuthRefresh,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete stored tokens",
	Long:  `Delete every stored token for the configured client ID.`,
	RunE:  runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authLogoutCmd)

	authCmd.Flags().BoolVar(&authShowDialog, "show-dialog", false, "Force the consent dialog even if already approved")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	// Load existing config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Step 1: Get application credentials
	fmt.Println("Spotify Authorization")
	fmt.Println("=====================")
	fmt.Println()
	fmt.Println("You can create an application at: https://developer.spotify.com/dashboard")
	fmt.Printf("Redirect URI to register: %s\n", cfg.Spotify.RedirectURI)
	fmt.Println()

	// Check if we already have credentials
	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		fmt.Printf("Found existing application credentials.\n")
		fmt.Printf("Client ID: %s\n", cfg.Spotify.ClientID)
		fmt.Print("\nUse existing credentials? [Y/n]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "y"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "" && response != "y" && response != "yes" {
			// User wants to enter new credentials
			cfg.Spotify.ClientID = ""
			cfg.Spotify.ClientSecret = ""
		}
	}

	// Prompt for client ID if not set
	if cfg.Spotify.ClientID == "" {
		fmt.Print("Enter your Spotify Client ID: ")
		clientID, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client ID: %w", err)
		}
		cfg.Spotify.ClientID = strings.TrimSpace(clientID)
	}

	// Prompt for client secret if not set
	if cfg.Spotify.ClientSecret == "" {
		fmt.Print("Enter your Spotify Client Secret: ")
		clientSecret, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read client secret: %w", err)
		}
		cfg.Spotify.ClientSecret = strings.TrimSpace(clientSecret)
	}

	// Validate inputs
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("client ID and secret are required")
	}

	logger := setupLogger()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	// Step 2: Build the authorize URL
	s, err := session.NewForAuth(cfg.Spotify, st, logger, session.Options{})
	if err != nil {
		return err
	}

	state := uuid.NewString()
	authURL := s.AuthURL(state, authShowDialog)

	// Step 3: Direct user to authorize
	fmt.Println("\nPlease visit this URL to authorize spindle:")
	fmt.Printf("\n  %s\n\n", authURL)
	fmt.Print("Paste the URL you were redirected to (or just the code): ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read redirect URL: %w", err)
	}

	code, err := session.ExtractCode(input, state)
	if err != nil {
		return err
	}

	// Step 4: Exchange the code; the session saves the tokens
	fmt.Println("Exchanging authorization code...")
	tok, err := s.Authorize(ctx, code)
	if err != nil {
		return err
	}

	// Step 5: Save credentials to config
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n✓ Authorization successful!\n")
	if user, err := s.Client().Users().GetCurrentUserProfile(ctx); err == nil {
		fmt.Printf("✓ Logged in as %s\n", user.DisplayName)
	}
	fmt.Printf("✓ Granted scopes: %s\n", tok.Scope)
	fmt.Printf("✓ Credentials saved to %s/config.yaml\n", config.GetConfigDir())
	fmt.Println("\nYou can now use 'spindle now' to see what's playing.")

	return nil
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	tok, err := e.session.Refresh(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Access token refreshed (expires %s)\n", tok.Expiry.Local().Format("15:04:05"))
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	deleted, err := st.Delete(ctx, cfg.Spotify.ClientID)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Deleted %d stored token(s)\n", deleted)
	return nil
}
