package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"pricesync/internal/app"
	"pricesync/internal/config"
	"pricesync/internal/logging"
)

type rootParams struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	params := &rootParams{}

	cmd := &cobra.Command{
		Use:          "pricectl",
		Short:        "Query exchange rates and manage the orderbook asset table",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&params.configPath, "config", "", "path to config.json (defaults to $CONFIG_FILE or ./config.json)")
	cmd.PersistentFlags().StringVar(&params.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newRateCommand(params),
		newConvertCommand(params),
		newCurrenciesCommand(params),
		newCryptoAssetsCommand(params),
		newCryptoPriceCommand(params),
		newUpdatePriceCommand(params),
		newSyncCommand(params),
		newAssetsCommand(params),
		newPasswordStrengthCommand(),
	)

	return cmd
}

func (p *rootParams) load(cmd *cobra.Command) (config.Config, hclog.Logger, error) {
	path := p.configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	level := cfg.Log.Level
	if p.logLevel != "" {
		level = p.logLevel
	}
	logger := logging.NewWithOutput("pricectl", level, cfg.Log.JSON, cmd.ErrOrStderr())
	return cfg, logger, nil
}

// withApp runs fn against a fully wired App, closing it afterwards.
func (p *rootParams) withApp(cmd *cobra.Command, fn func(a *app.App) (any, error)) error {
	cfg, logger, err := p.load(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := fn(a)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
