package binanceapi

import "strconv"

// MarginCancelOrder identifies the margin order to cancel.
// OrigClientOrderID takes priority over OrderID when both are set.
type MarginCancelOrder struct {
	Symbol            string
	OrderID           *int64
	OrigClientOrderID string
	NewClientOrderID  string
}

// BuildMarginCancelOrderParams assembles the parameters of DELETE /sapi/v1/margin/order.
func BuildMarginCancelOrderParams(cancel MarginCancelOrder, isolated bool) Params {
	params := Params{
		paramSymbol:     cancel.Symbol,
		paramIsIsolated: isolatedFlag(isolated),
	}

	if key, value, ok := selectCancelOrderID(cancel.OrderID, cancel.OrigClientOrderID); ok {
		params[key] = value
	}

	if cancel.NewClientOrderID != "" {
		params[paramNewClientOrderID] = cancel.NewClientOrderID
	}

	return params
}

// BuildMarginCancelOpenOrdersParams assembles the parameters of DELETE /sapi/v1/margin/openOrders.
func BuildMarginCancelOpenOrdersParams(symbol string, isolated bool) Params {
	return Params{
		paramSymbol:     symbol,
		paramIsIsolated: isolatedFlag(isolated),
	}
}

// selectCancelOrderID drops orderId entirely once origClientOrderId is given.
func selectCancelOrderID(orderID *int64, origClientOrderID string) (string, string, bool) {
	if origClientOrderID != "" {
		return paramOrigClientOrder, origClientOrderID, true
	}

	if orderID != nil {
		return paramOrderID, strconv.FormatInt(*orderID, 10), true
	}

	return "", "", false
}
