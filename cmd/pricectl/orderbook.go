package main

import (
	"github.com/spf13/cobra"

	"pricesync/internal/app"
	"pricesync/internal/orderbook"
)

func newUpdatePriceCommand(params *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "update-price SYMBOL PRICE",
		Short: "Set the price of an asset already in the orderbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := orderbook.ParsePrice(args[1])
			if err != nil {
				return err
			}
			return params.withApp(cmd, func(a *app.App) (any, error) {
				return a.Syncer.UpdatePrice(cmd.Context(), args[0], price)
			})
		},
	}
}

func newSyncCommand(params *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "sync SYMBOL...",
		Short: "Quote each crypto SYMBOL in USD and write it to the orderbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return params.withApp(cmd, func(a *app.App) (any, error) {
				written := make([]orderbook.Asset, 0, len(args))
				for _, symbol := range args {
					asset, err := a.Syncer.UpsertCryptoAsset(cmd.Context(), symbol)
					if err != nil {
						return nil, err
					}
					written = append(written, asset)
				}
				return written, nil
			})
		},
	}
}

func newAssetsCommand(params *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "assets [SYMBOL]",
		Short: "Print one orderbook asset, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return params.withApp(cmd, func(a *app.App) (any, error) {
				if len(args) == 1 {
					return a.Store.Get(cmd.Context(), args[0])
				}
				return a.Store.List(cmd.Context())
			})
		},
	}
}
