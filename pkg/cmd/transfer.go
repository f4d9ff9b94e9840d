package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/bbgo-margin/pkg/cmd/cmdutil"
	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
)

func init() {
	IsolatedTransferCmd.Flags().String("asset", "", "the asset to transfer, like USDT")
	IsolatedTransferCmd.Flags().String("symbol", "", "the isolated margin symbol, like BTCUSDT")
	IsolatedTransferCmd.Flags().String("from", string(binanceapi.AccountTypeSpot), "SPOT or ISOLATED_MARGIN")
	IsolatedTransferCmd.Flags().String("to", string(binanceapi.AccountTypeIsolatedMargin), "SPOT or ISOLATED_MARGIN")
	IsolatedTransferCmd.Flags().String("amount", "", "the transfer amount, sent as given")
	RootCmd.AddCommand(IsolatedTransferCmd)
}

// go run ./cmd/bbgo-margin isolated-transfer --asset=USDT --symbol=BTCUSDT --from=SPOT --to=ISOLATED_MARGIN --amount=10
var IsolatedTransferCmd = &cobra.Command{
	Use:   "isolated-transfer",
	Short: "transfer an asset between the spot wallet and an isolated margin account",

	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		var transfer binanceapi.IsolatedTransfer
		var err error
		if transfer.Asset, err = requiredString(flags, "asset"); err != nil {
			return err
		}

		if transfer.Symbol, err = requiredString(flags, "symbol"); err != nil {
			return err
		}

		from, err := requiredString(flags, "from")
		if err != nil {
			return err
		}

		to, err := requiredString(flags, "to")
		if err != nil {
			return err
		}

		transfer.From = binanceapi.AccountType(strings.ToUpper(from))
		transfer.To = binanceapi.AccountType(strings.ToUpper(to))
		if transfer.From == transfer.To {
			return fmt.Errorf("--from and --to are both %s", transfer.From)
		}

		amount, err := requiredString(flags, "amount")
		if err != nil {
			return err
		}
		transfer.Amount = amount

		service, err := cmdutil.NewMarginService(ctx)
		if err != nil {
			return err
		}

		resp, err := service.IsolatedTransfer(ctx, transfer)
		if err != nil {
			return err
		}

		logrus.Infof("transferred %s %s from %s to %s (%s), tranId: %d",
			amount, transfer.Asset, transfer.From, transfer.To, transfer.Symbol, resp.TranID)
		return nil
	},
}
