package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fairpay-io/stripe-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	Key     string `yaml:"key,omitempty"`
	Account string `yaml:"account,omitempty"`
	API     string `yaml:"api,omitempty"`
	Output  string `yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command tree.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get, set, and list configuration values stored in the config file",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigListCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			value, ok := configField(config, args[0])
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownKey, args[0])
			}

			fmt.Println(value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if !setConfigField(config, args[0], args[1]) {
				return fmt.Errorf("%w: %q", ErrUnknownKey, args[0])
			}

			return saveConfig(config)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if !setConfigField(config, args[0], "") {
				return fmt.Errorf("%w: %q", ErrUnknownKey, args[0])
			}

			return saveConfig(config)
		},
	}
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			_ = table.Append("key", maskKey(config.Key))
			_ = table.Append("account", config.Account)
			_ = table.Append("api", config.API)
			_ = table.Append("output", config.Output)

			_ = table.Render()

			return nil
		},
	}
}

// maskKey hides the stored secret key for display.
func maskKey(key string) string {
	if key == "" {
		return ""
	}

	return constants.MaskedSecret
}

func configField(config *Config, key string) (string, bool) {
	switch key {
	case "key":
		return config.Key, true
	case "account":
		return config.Account, true
	case "api":
		return config.API, true
	case "output":
		return config.Output, true
	default:
		return "", false
	}
}

func setConfigField(config *Config, key, value string) bool {
	switch key {
	case "key":
		config.Key = value
	case "account":
		config.Account = value
	case "api":
		config.API = value
	case "output":
		config.Output = value
	default:
		return false
	}

	return true
}

func configFilePath() (string, error) {
	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".stripecli", "config.yml"), nil
}

func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &config, nil
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
