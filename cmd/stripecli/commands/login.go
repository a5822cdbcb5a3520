package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"syscall"

	"github.com/fairpay-io/stripe-client/internal/constants"
	"github.com/fairpay-io/stripe-client/pkg/stripe"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long:  "Verify a secret API key against the API and save it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := viper.GetString("key")

			if key == "" {
				fmt.Print("Secret key: ")

				byteKey, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read key: %w", err)
				}

				key = strings.TrimSpace(string(byteKey))

				fmt.Println()
			}

			if key == "" {
				return ErrEmptySecretKey
			}

			opts := []stripe.Option{}
			if api := viper.GetString("api"); api != "" {
				opts = append(opts, stripe.WithBaseURL(api))
			}

			client, err := stripe.New(key, opts...)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.ShortHTTPTimeout)
			defer cancel()

			raw, err := client.Get(ctx, "/balance")
			if err != nil {
				if apiErr, ok := stripe.IsAPIError(err); ok {
					return fmt.Errorf("key rejected by the API: %w", apiErr)
				}

				return fmt.Errorf("failed to verify key: %w", err)
			}

			var balance struct {
				Livemode bool `json:"livemode"`
			}

			mode := "unknown"
			if err := json.Unmarshal(raw, &balance); err == nil {
				mode = "test"
				if balance.Livemode {
					mode = "live"
				}
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.Key = key

			err = saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Successfully logged in (%s mode)\n", mode)

			return nil
		},
	}

	return cmd
}
