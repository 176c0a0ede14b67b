package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"pricesync/internal/app"
	"pricesync/internal/fault"
	"pricesync/internal/quote"
)

type fiatRate struct {
	From string  `json:"from_currency"`
	To   string  `json:"to_currency"`
	Rate float64 `json:"exchange_rate"`
}

type cryptoPrice struct {
	From  string  `json:"from_crypto"`
	To    string  `json:"to_currency"`
	Price float64 `json:"price"`
}

// quoteCommand builds a command that only needs the provider clients.
func quoteCommand(params *rootParams, use, short string, nargs int, run func(cmd *cobra.Command, q *quote.Composer, args []string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := params.load(cmd)
			if err != nil {
				return err
			}
			result, err := run(cmd, app.NewComposer(cfg), args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newRateCommand(params *rootParams) *cobra.Command {
	return quoteCommand(params, "rate FROM TO", "Print the fiat exchange rate from FROM to TO", 2,
		func(cmd *cobra.Command, q *quote.Composer, args []string) (any, error) {
			rate, err := q.QuoteFiat(cmd.Context(), args[0], args[1])
			if err != nil {
				return nil, err
			}
			return fiatRate{From: quote.Normalize(args[0]), To: quote.Normalize(args[1]), Rate: rate}, nil
		})
}

func newConvertCommand(params *rootParams) *cobra.Command {
	return quoteCommand(params, "convert FROM TO AMOUNT", "Convert AMOUNT of FROM into TO", 3,
		func(cmd *cobra.Command, q *quote.Composer, args []string) (any, error) {
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return nil, fault.Wrap(fault.InvalidArgument, err, "amount %q is not numeric", args[2])
			}
			return q.ConvertAmount(cmd.Context(), args[0], args[1], amount)
		})
}

func newCurrenciesCommand(params *rootParams) *cobra.Command {
	return quoteCommand(params, "currencies BASE", "List the fiat currencies quoted against BASE", 1,
		func(cmd *cobra.Command, q *quote.Composer, args []string) (any, error) {
			return q.FiatCurrencies(cmd.Context(), args[0])
		})
}

func newCryptoAssetsCommand(params *rootParams) *cobra.Command {
	return quoteCommand(params, "crypto-assets", "List the crypto assets known to the provider", 0,
		func(cmd *cobra.Command, q *quote.Composer, _ []string) (any, error) {
			return q.CryptoAssets(cmd.Context())
		})
}

func newCryptoPriceCommand(params *rootParams) *cobra.Command {
	return quoteCommand(params, "crypto-price ASSET CURRENCY", "Print the price of one ASSET in CURRENCY", 2,
		func(cmd *cobra.Command, q *quote.Composer, args []string) (any, error) {
			price, err := q.QuoteCrypto(cmd.Context(), args[0], args[1])
			if err != nil {
				return nil, err
			}
			return cryptoPrice{From: quote.Normalize(args[0]), To: quote.Normalize(args[1]), Price: price}, nil
		})
}
