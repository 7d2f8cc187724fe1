package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".paymentrails"
	configFileName = "config.yml"
)

// Config represents the persisted CLI configuration.
type Config struct {
	APIKey      string `json:"api_key,omitempty"     yaml:"api_key,omitempty"`
	APISecret   string `json:"api_secret,omitempty"  yaml:"api_secret,omitempty"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
	BaseURL     string `json:"base_url,omitempty"    yaml:"base_url,omitempty"`
	Output      string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// Masked returns a copy safe for display.
func (c Config) Masked() Config {
	if c.APISecret != "" {
		c.APISecret = constants.MaskedSecret
	}

	return c
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the prails configuration file and stored API credentials",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetCredentialsCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after merging the config file, environment and flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := effectiveConfig().Masked()
			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, config); ok || err != nil {
				return err
			}

			environment := config.Environment
			if environment == "" {
				environment = constants.EnvironmentProduction
			}

			return renderDetails(out, [][2]string{
				{"Config File", configFilePath()},
				{"API Key", valueOrNA(config.APIKey)},
				{"API Secret", valueOrNA(config.APISecret)},
				{"Environment", environment},
				{"Base URL", config.BaseURL},
				{"Output", valueOrNA(config.Output)},
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Keys: api_key, api_secret, environment, base_url, output`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()

			config, err := loadConfigFile(path)
			if err != nil {
				return err
			}

			if err := config.Set(args[0], args[1]); err != nil {
				return err
			}

			if err := saveConfigFile(path, config); err != nil {
				return err
			}

			display := args[1]
			if args[0] == KeyAPISecret {
				display = constants.MaskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s in %s\n", args[0], display, path)

			return nil
		},
	}
}

func newConfigSetCredentialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-credentials",
		Short: "Store API credentials",
		Long: `Store an API key pair in the config file.

Values passed with --api-key and --api-secret are used as-is; missing ones are
prompted for. The secret is read without echo when stdin is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()

			config, err := loadConfigFile(path)
			if err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			apiKey := viper.GetString(KeyAPIKey)
			if apiKey == "" {
				apiKey, err = promptLine(reader, out, "API Key: ")
				if err != nil {
					return err
				}
			}

			apiSecret := viper.GetString(KeyAPISecret)
			if apiSecret == "" {
				apiSecret, err = promptSecret(reader, out, "API Secret: ")
				if err != nil {
					return err
				}
			}

			if apiKey == "" || apiSecret == "" {
				return constants.ErrNoCredentials
			}

			config.APIKey = apiKey
			config.APISecret = apiSecret

			if cmd.Flags().Changed("environment") {
				if err := config.Set(KeyEnvironment, viper.GetString(KeyEnvironment)); err != nil {
					return err
				}
			}

			if err := saveConfigFile(path, config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Saved credentials for key %s to %s\n", apiKey, path)

			return nil
		},
	}
}

// Set assigns a single key after validating its value.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyAPIKey:
		c.APIKey = value
	case KeyAPISecret:
		c.APISecret = value
	case KeyEnvironment:
		environment := strings.ToLower(value)
		if environment != constants.EnvironmentProduction && environment != constants.EnvironmentSandbox {
			return fmt.Errorf("%w: %q (expected production or sandbox)", constants.ErrUnknownEnvironment, value)
		}

		c.Environment = environment
	case KeyBaseURL:
		if value != "" {
			parsed, err := url.Parse(value)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return fmt.Errorf("invalid base URL %q: expected an absolute URL", value)
			}
		}

		c.BaseURL = strings.TrimSuffix(value, "/")
	case KeyOutput:
		output := strings.ToLower(value)
		if output != OutputFormatTable && output != OutputFormatJSON && output != OutputFormatYAML {
			return fmt.Errorf("%w: %q (expected table, json or yaml)", constants.ErrInvalidOutputFormat, value)
		}

		c.Output = output
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// effectiveConfig reads the merged view of file, environment and flags.
func effectiveConfig() Config {
	return Config{
		APIKey:      viper.GetString(KeyAPIKey),
		APISecret:   viper.GetString(KeyAPISecret),
		Environment: viper.GetString(KeyEnvironment),
		BaseURL:     viper.GetString(KeyBaseURL),
		Output:      viper.GetString(KeyOutput),
	}
}

// configFilePath returns the --config path, the file viper loaded, or the default location.
func configFilePath() string {
	if path := viper.GetString(KeyConfig); path != "" {
		return path
	}

	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, configFileName)
	}

	return filepath.Join(home, configDirName, configFileName)
}

// DefaultConfigDir returns ~/.paymentrails.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// loadConfigFile reads only the file, so saving never persists env or flag values.
func loadConfigFile(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func saveConfigFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func promptSecret(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(reader, out, prompt)
	}

	_, _ = fmt.Fprint(out, prompt)

	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	_, _ = fmt.Fprintln(out)

	return strings.TrimSpace(string(secret)), nil
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
