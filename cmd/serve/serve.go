package serve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/koreality/koreality-go/internal/conf"
	"github.com/koreality/koreality-go/internal/server"
)

// Command creates the serve command which runs the HTTP API server.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Koreality API server",
		Long:  "Start the JSON API serving locations, events, idols, birthdays and ads.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the serve command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.Map.APIKey, "mapkey", viper.GetString("map.apikey"), "Map widget API key")
	cmd.Flags().IntVar(&settings.Ads.RotationInterval, "adinterval", viper.GetInt("ads.rotationinterval"), "Seconds between automatic ad changes")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
