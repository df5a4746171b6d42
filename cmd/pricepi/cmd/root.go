// Package cmd implements the pricepi CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/pricepi/internal/config"
	"github.com/donaldgifford/pricepi/pkg/logger"
	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

// flag keys shared by viper and the config overlay.
const (
	keyClientID   = "client_id"
	keyAccountKey = "account_key"
	keyEndpoint   = "endpoint"
	keyLogLevel   = "log_level"
	keyLogFormat  = "log_format"
	keyOutput     = "output"
	keyGateway    = "gateway"
)

// app carries state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pricepi",
		Short: "Search the Pricepi product-price API",
		Long: "pricepi is a command-line client for the Pricepi product-price search API.\n" +
			"It signs and sends searches, prints signed request parameters for\n" +
			"debugging, and can run a local HTTP gateway in front of the API.",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file path")
	flags.String("client-id", "", "Pricepi client ID")
	flags.String("account-key", "", "Pricepi account key")
	flags.String("endpoint", "", "Pricepi API endpoint (default "+pricepi.DefaultEndpoint+")")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.String("output", "table", "output format (table, json)")

	for key, name := range map[string]string{
		keyClientID:   "client-id",
		keyAccountKey: "account-key",
		keyEndpoint:   "endpoint",
		keyLogLevel:   "log-level",
		keyLogFormat:  "log-format",
		keyOutput:     "output",
	} {
		cobra.CheckErr(a.v.BindPFlag(key, flags.Lookup(name)))
	}

	a.v.SetEnvPrefix("PRICEPI")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(signCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// config loads the config file if one was given, overlays flags and
// PRICEPI_* environment variables, and validates the result.
func (a *app) config() (*config.Config, error) {
	cfg := config.Default()
	if a.cfgFile != "" {
		var err error
		if cfg, err = config.Read(a.cfgFile); err != nil {
			return nil, err
		}
	}

	overlay := func(key string, dst *string) {
		if a.v.IsSet(key) {
			if s := a.v.GetString(key); s != "" {
				*dst = s
			}
		}
	}
	overlay(keyClientID, &cfg.Pricepi.ClientID)
	overlay(keyAccountKey, &cfg.Pricepi.AccountKey)
	overlay(keyEndpoint, &cfg.Pricepi.Endpoint)
	overlay(keyLogLevel, &cfg.Logging.Level)
	overlay(keyLogFormat, &cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (*app) logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
}

func (a *app) client(cmd *cobra.Command, cfg *config.Config) *pricepi.Client {
	return pricepi.New(cfg.Pricepi.ClientID, cfg.Pricepi.AccountKey,
		pricepi.WithEndpoint(cfg.Pricepi.Endpoint),
		pricepi.WithHTTPClient(&http.Client{Timeout: cfg.Pricepi.Timeout}),
		pricepi.WithLogger(a.logger(cmd, cfg)),
	)
}

func (a *app) jsonOutput() bool {
	return a.v.GetString(keyOutput) == "json"
}
