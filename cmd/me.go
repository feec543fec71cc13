package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/spf13/cobra"
)

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me [user-id]",
	Short: "Show your Spotify profile or another user's",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMe,
}

func init() {
	rootCmd.AddCommand(meCmd)
}

func runMe(cmd *cobra.Command, args []string) error {
	return withEnv(func(ctx context.Context, e *env) error {
		users := e.session.Client().Users()

		if len(args) == 1 {
			user, err := users.GetUserProfile(ctx, spotify.GetUserProfileParams{UserID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get user profile: %w", err)
			}
			fmt.Printf("Name:      %s\n", user.DisplayName)
			fmt.Printf("ID:        %s\n", user.ID)
			fmt.Printf("Followers: %d\n", int(user.Followers.Count))
			return nil
		}

		user, err := users.GetCurrentUserProfile(ctx)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		fmt.Printf("Name:      %s\n", user.DisplayName)
		fmt.Printf("ID:        %s\n", user.ID)
		fmt.Printf("Email:     %s\n", user.Email)
		fmt.Printf("Country:   %s\n", user.Country)
		fmt.Printf("Product:   %s\n", user.Product)
		fmt.Printf("Followers: %d\n", int(user.Followers.Count))
		fmt.Printf("Scopes:    %s\n", e.session.Client().GetScope())
		return nil
	})
}
