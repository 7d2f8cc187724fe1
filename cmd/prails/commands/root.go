package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g. PAYMENTRAILS_API_KEY.
const EnvPrefix = "PAYMENTRAILS"

// NewRootCommand creates the prails command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prails",
		Short: "PaymentRails API CLI",
		Long: `A command-line interface for the PaymentRails payouts API.

Manage recipients and their payout accounts, build payment batches, quote them
and start processing. Credentials are read from flags, PAYMENTRAILS_* environment
variables, a .env file in the working directory or ~/.paymentrails/config.yml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitConfig()
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.paymentrails/config.yml)")
	flags.String("api-key", "", "API key")
	flags.String("api-secret", "", "API secret")
	flags.StringP("environment", "e", "", "API environment (production or sandbox)")
	flags.String("base-url", "", "override the API base URL")
	flags.StringP("output", "o", OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")

	// Bind flags to viper
	_ = viper.BindPFlag(KeyConfig, flags.Lookup("config"))
	_ = viper.BindPFlag(KeyAPIKey, flags.Lookup("api-key"))
	_ = viper.BindPFlag(KeyAPISecret, flags.Lookup("api-secret"))
	_ = viper.BindPFlag(KeyEnvironment, flags.Lookup("environment"))
	_ = viper.BindPFlag(KeyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(KeyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(KeyVerbose, flags.Lookup("verbose"))

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewRecipientsCommand())
	rootCmd.AddCommand(NewAccountsCommand())
	rootCmd.AddCommand(NewBatchesCommand())

	return rootCmd
}

// InitConfig loads .env, the config file and PAYMENTRAILS_* environment variables into viper.
func InitConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	if cfgFile := viper.GetString(KeyConfig); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := DefaultConfigDir()
		if err != nil {
			return err
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil {
		if viper.GetBool(KeyVerbose) {
			_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}

		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to read config file: %w", err)
}
