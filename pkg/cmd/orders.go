package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/bbgo-margin/pkg/cmd/cmdutil"
	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
	"github.com/c9s/bbgo-margin/pkg/style"
)

func init() {
	orderFlags(placeOrderCmd.Flags())
	placeOrderCmd.Flags().Bool("isolated", false, "place the order on the isolated margin account")

	orderFlags(placeIsolatedOrderCmd.Flags())

	cancelOrderCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	cancelOrderCmd.Flags().Int64Slice("order-id", nil, "the exchange order ids, can not be combined with --orig-client-order-id")
	cancelOrderCmd.Flags().StringSlice("orig-client-order-id", nil, "the client order ids of the orders")
	cancelOrderCmd.Flags().String("client-order-id", "", "the client id of the cancellation")
	cancelOrderCmd.Flags().Bool("isolated", false, "cancel on the isolated margin account")

	cancelOpenOrdersCmd.Flags().String("symbol", "", "the trading pair, like BTCUSDT")
	cancelOpenOrdersCmd.Flags().Bool("isolated", false, "cancel on the isolated margin account")

	RootCmd.AddCommand(placeOrderCmd, placeIsolatedOrderCmd, cancelOrderCmd, cancelOpenOrdersCmd)
}

func orderFlags(flags *pflag.FlagSet) {
	flags.String("symbol", "", "the trading pair, like BTCUSDT")
	flags.String("side", "", "BUY or SELL")
	flags.String("type", string(binanceapi.OrderTypeLimit), "LIMIT, MARKET, STOP_LOSS, STOP_LOSS_LIMIT, TAKE_PROFIT, TAKE_PROFIT_LIMIT or LIMIT_MAKER")
	flags.String("quantity", "", "base asset quantity")
	flags.String("quote-order-qty", "", "quote asset amount of the MARKET order")
	flags.String("price", "", "limit price")
	flags.String("stop-price", "", "trigger price of the stop and take profit orders")
	flags.String("iceberg-qty", "", "visible quantity of the iceberg order")
	flags.String("time-in-force", "", "GTC, IOC or FOK, defaults to GTC")
	flags.String("client-order-id", "", "the client order id")
	flags.Bool("generate-client-order-id", false, "use a random uuid as the client order id when --client-order-id is empty")
	flags.String("resp-type", "", "ACK, RESULT or FULL, defaults by the order type")
	flags.String("side-effect", "", "NO_SIDE_EFFECT, MARGIN_BUY or AUTO_REPAY")
}

// go run ./cmd/bbgo-margin place-order --symbol=BTCUSDT --side=BUY --type=LIMIT --quantity=0.001 --price=20000
var placeOrderCmd = &cobra.Command{
	Use:   "place-order",
	Short: "place a cross margin order, or an isolated one with --isolated",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		order, err := marginOrderFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		isolated, err := cmd.Flags().GetBool("isolated")
		if err != nil {
			return err
		}

		service, err := cmdutil.NewMarginService(ctx)
		if err != nil {
			return err
		}

		resp, err := service.PlaceOrder(ctx, order, isolated)
		if err != nil {
			return err
		}

		renderOrderResponse(cmd.OutOrStdout(), resp)
		return nil
	},
}

var placeIsolatedOrderCmd = &cobra.Command{
	Use:   "place-isolated-order",
	Short: "place an order on the isolated margin account of the symbol",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		order, err := marginOrderFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		service, err := cmdutil.NewMarginService(ctx)
		if err != nil {
			return err
		}

		resp, err := service.PlaceIsolatedOrder(ctx, order)
		if err != nil {
			return err
		}

		renderOrderResponse(cmd.OutOrStdout(), resp)
		return nil
	},
}

var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order",
	Short: "cancel margin orders by --orig-client-order-id or by --order-id, not both",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		symbol, err := requiredString(flags, "symbol")
		if err != nil {
			return err
		}

		orderIDs, err := flags.GetInt64Slice("order-id")
		if err != nil {
			return err
		}

		origClientOrderIDs, err := flags.GetStringSlice("orig-client-order-id")
		if err != nil {
			return err
		}

		newClientOrderID, err := flags.GetString("client-order-id")
		if err != nil {
			return err
		}

		cancels, err := marginCancelOrders(symbol, orderIDs, origClientOrderIDs, newClientOrderID)
		if err != nil {
			return err
		}

		isolated, err := flags.GetBool("isolated")
		if err != nil {
			return err
		}

		service, err := cmdutil.NewMarginService(ctx)
		if err != nil {
			return err
		}

		canceled := make([]binanceapi.MarginCancelOrderResponse, len(cancels))
		eg, ctx := errgroup.WithContext(ctx)
		for i, cancel := range cancels {
			i, cancel := i, cancel
			eg.Go(func() error {
				resp, err := service.CancelOrder(ctx, cancel, isolated)
				if err != nil {
					return err
				}

				canceled[i] = *resp
				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return err
		}

		renderCanceledOrders(cmd.OutOrStdout(), canceled)
		return nil
	},
}

// marginCancelOrders builds one cancellation per identifier.
// The order ids and the client order ids can not be mixed in one call,
// newClientOrderID only applies to a single cancellation.
func marginCancelOrders(symbol string, orderIDs []int64, origClientOrderIDs []string, newClientOrderID string) ([]binanceapi.MarginCancelOrder, error) {
	if len(orderIDs) > 0 && len(origClientOrderIDs) > 0 {
		return nil, errors.New("--order-id and --orig-client-order-id can not be used together")
	}

	var cancels []binanceapi.MarginCancelOrder
	for _, id := range origClientOrderIDs {
		cancels = append(cancels, binanceapi.MarginCancelOrder{Symbol: symbol, OrigClientOrderID: id})
	}

	for _, id := range orderIDs {
		orderID := id
		cancels = append(cancels, binanceapi.MarginCancelOrder{Symbol: symbol, OrderID: &orderID})
	}

	if len(cancels) == 0 {
		return nil, errors.New("either --order-id or --orig-client-order-id is required")
	}

	if len(cancels) == 1 {
		cancels[0].NewClientOrderID = newClientOrderID
	}

	return cancels, nil
}

var cancelOpenOrdersCmd = &cobra.Command{
	Use:   "cancel-open-orders",
	Short: "cancel all open margin orders of the symbol",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		symbol, err := requiredString(cmd.Flags(), "symbol")
		if err != nil {
			return err
		}

		isolated, err := cmd.Flags().GetBool("isolated")
		if err != nil {
			return err
		}

		service, err := cmdutil.NewMarginService(ctx)
		if err != nil {
			return err
		}

		orders, err := service.CancelAllOpenOrders(ctx, symbol, isolated)
		if err != nil {
			return err
		}

		renderCanceledOrders(cmd.OutOrStdout(), orders)
		return nil
	},
}

func marginOrderFromFlags(flags *pflag.FlagSet) (order binanceapi.MarginOrder, err error) {
	if order.Symbol, err = requiredString(flags, "symbol"); err != nil {
		return order, err
	}

	side, err := requiredString(flags, "side")
	if err != nil {
		return order, err
	}
	order.Side = binanceapi.SideType(strings.ToUpper(side))

	orderType, err := requiredString(flags, "type")
	if err != nil {
		return order, err
	}
	order.Type = binanceapi.OrderType(strings.ToUpper(orderType))

	decimals := map[string]**decimal.Decimal{
		"quantity":        &order.Quantity,
		"quote-order-qty": &order.QuoteOrderQty,
		"price":           &order.Price,
		"stop-price":      &order.StopPrice,
		"iceberg-qty":     &order.IcebergQty,
	}

	for name, dst := range decimals {
		if *dst, err = decimalFlag(flags, name); err != nil {
			return order, err
		}
	}

	enums := map[string]*string{
		"time-in-force": (*string)(&order.TimeInForce),
		"resp-type":     (*string)(&order.NewOrderRespType),
		"side-effect":   (*string)(&order.SideEffectType),
	}

	for name, dst := range enums {
		v, err := flags.GetString(name)
		if err != nil {
			return order, err
		}
		*dst = strings.ToUpper(v)
	}

	if order.NewClientOrderID, err = flags.GetString("client-order-id"); err != nil {
		return order, err
	}

	generate, err := flags.GetBool("generate-client-order-id")
	if err != nil {
		return order, err
	}

	if generate && len(order.NewClientOrderID) == 0 {
		order.NewClientOrderID = uuid.NewString()
	}

	// an explicit client order id or iceberg quantity on the command line asks for them to be sent
	order.SendOptionalFields = len(order.NewClientOrderID) > 0 || order.IcebergQty != nil
	return order, nil
}

func requiredString(flags *pflag.FlagSet, name string) (string, error) {
	v, err := flags.GetString(name)
	if err != nil {
		return "", err
	}

	if len(v) == 0 {
		return "", fmt.Errorf("--%s is required", name)
	}

	return v, nil
}

// decimalFlag returns nil when the flag is empty
func decimalFlag(flags *pflag.FlagSet, name string) (*decimal.Decimal, error) {
	v, err := flags.GetString(name)
	if err != nil || len(v) == 0 {
		return nil, err
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s %q", name, v)
	}

	return &d, nil
}

func renderOrderResponse(out io.Writer, resp *binanceapi.MarginOrderResponse) {
	t := style.NewTableWriter(out, "Margin Order",
		"Symbol", "Order ID", "Client Order ID", "Isolated", "Side", "Type", "Status", "Price", "Orig Qty", "Executed Qty")
	t.AppendRow([]interface{}{
		resp.Symbol, resp.OrderID, resp.ClientOrderID, resp.IsIsolated, resp.Side, resp.Type, resp.Status,
		resp.Price.String(), resp.OrigQuantity.String(), resp.ExecutedQuantity.String(),
	})
	t.Render()

	if len(resp.Fills) == 0 {
		return
	}

	ft := style.NewTableWriter(out, "Fills", "Trade ID", "Price", "Quantity", "Commission", "Commission Asset")
	for _, fill := range resp.Fills {
		ft.AppendRow([]interface{}{
			fill.TradeID, fill.Price.String(), fill.Quantity.String(), fill.Commission.String(), fill.CommissionAsset,
		})
	}
	ft.Render()
}

func renderCanceledOrders(out io.Writer, orders []binanceapi.MarginCancelOrderResponse) {
	t := style.NewTableWriter(out, "Canceled Margin Orders",
		"Symbol", "Order ID", "Orig Client Order ID", "Isolated", "Side", "Type", "Status", "Price", "Executed Qty")
	for _, o := range orders {
		t.AppendRow([]interface{}{
			o.Symbol, o.OrderID, o.OrigClientOrderID, o.IsIsolated, o.Side, o.Type, o.Status,
			o.Price.String(), o.ExecutedQuantity.String(),
		})
	}
	t.Render()
}
