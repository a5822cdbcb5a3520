package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Issue a GET request",
		Long: `Issue a GET request against an API path, e.g.:

  stripecli get /charges/ch_123
  stripecli get /balance --jq '.available[0].amount'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			raw, err := client.Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("GET %s: %w", args[0], err)
			}

			return RenderResponse(os.Stdout, raw, viper.GetString("output"), viper.GetString("jq"))
		},
	}
}

// NewPostCommand creates the post command.
func NewPostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "post <path> [field=value ...]",
		Short: "Issue a POST request",
		Long: `Issue a POST request against an API path. Parameters are given as
field=value pairs and sent as a form-encoded body; bracket notation in the
field addresses nested parameters:

  stripecli post /charges amount=2000 currency=usd 'card[number]=4242424242424242'

With no parameters the request body is empty, which suits action endpoints:

  stripecli post /charges/ch_123/capture`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			path := args[0]
			ctx := context.Background()

			var raw []byte

			if len(args) == 1 {
				raw, err = client.PostEmpty(ctx, path)
			} else {
				params, parseErr := parseFieldArgs(args[1:])
				if parseErr != nil {
					return parseErr
				}

				raw, err = client.Post(ctx, path, params)
			}

			if err != nil {
				return fmt.Errorf("POST %s: %w", path, err)
			}

			return RenderResponse(os.Stdout, raw, viper.GetString("output"), viper.GetString("jq"))
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Issue a DELETE request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			raw, err := client.Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("DELETE %s: %w", args[0], err)
			}

			return RenderResponse(os.Stdout, raw, viper.GetString("output"), viper.GetString("jq"))
		},
	}
}

// parseFieldArgs turns field=value arguments into nested params. Bracket
// paths like card[number] nest into maps so the encoder re-flattens them the
// same way.
func parseFieldArgs(args []string) (map[string]any, error) {
	params := make(map[string]any)

	for _, arg := range args {
		field, value, found := strings.Cut(arg, "=")
		if !found || field == "" {
			return nil, fmt.Errorf("%w: %q (expected field=value)", ErrInvalidFieldArg, arg)
		}

		segments, err := splitFieldPath(field)
		if err != nil {
			return nil, err
		}

		current := params
		for _, segment := range segments[:len(segments)-1] {
			next, ok := current[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[segment] = next
			}

			current = next
		}

		current[segments[len(segments)-1]] = value
	}

	return params, nil
}

// splitFieldPath splits "card[number]" into ["card", "number"].
func splitFieldPath(field string) ([]string, error) {
	head, rest, found := strings.Cut(field, "[")
	if !found {
		return []string{field}, nil
	}

	segments := []string{head}

	for rest != "" {
		segment, remainder, closed := strings.Cut(rest, "]")
		if !closed {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldArg, field)
		}

		segments = append(segments, segment)

		rest = strings.TrimPrefix(remainder, "[")
	}

	return segments, nil
}
