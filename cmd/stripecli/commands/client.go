package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fairpay-io/stripe-client/pkg/stripe"
	"github.com/spf13/viper"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIKeyRequired  = errors.New("API key is required (set --key, STRIPE_KEY, or run 'stripecli login')")
	ErrUnknownKey      = errors.New("unknown configuration key")
	ErrEmptySecretKey  = errors.New("secret key must not be empty")
	ErrInvalidFieldArg = errors.New("invalid parameter")
)

// CreateClient builds a stripe.Client from flags, environment, and the
// config file.
func CreateClient() (*stripe.Client, error) {
	key := viper.GetString("key")
	if key == "" {
		return nil, ErrAPIKeyRequired
	}

	var opts []stripe.Option

	if account := viper.GetString("account"); account != "" {
		opts = append(opts, stripe.WithParams(stripe.Params{StripeAccount: account}))
	}

	if api := viper.GetString("api"); api != "" {
		opts = append(opts, stripe.WithBaseURL(api))
	}

	if viper.GetBool("verbose") {
		opts = append(opts, stripe.WithLogger(&stderrLogger{}), stripe.WithDebug(true))
	}

	client, err := stripe.New(key, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// stderrLogger implements stripe.Logger for --verbose output.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }
