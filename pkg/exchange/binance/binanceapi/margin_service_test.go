package binanceapi_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/c9s/requestgen"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi"
	"github.com/c9s/bbgo-margin/pkg/exchange/binance/binanceapi/mocks"
	"github.com/c9s/bbgo-margin/pkg/testing/httptesting"
)

func newJSONResponse(t *testing.T, body string) *requestgen.Response {
	resp := httptesting.SetHeader(httptesting.BuildResponseString(http.StatusOK, body), "Content-Type", "application/json")
	response, err := requestgen.NewResponse(resp)
	if err != nil {
		t.Fatal(err)
	}
	return response
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

const orderResponseFull = `{
  "symbol": "BTCUSDT",
  "orderId": 28,
  "clientOrderId": "6gCrw2kRUAF9CvJDGP16IP",
  "transactTime": 1507725176595,
  "price": "1.00000000",
  "origQty": "10.00000000",
  "executedQty": "10.00000000",
  "cummulativeQuoteQty": "10.00000000",
  "status": "FILLED",
  "timeInForce": "GTC",
  "type": "MARKET",
  "side": "SELL",
  "marginBuyBorrowAmount": "5",
  "marginBuyBorrowAsset": "BTC",
  "isIsolated": true,
  "fills": [
    {"price": "4000.00000000", "qty": "1.00000000", "commission": "4.00000000", "commissionAsset": "USDT", "tradeId": 56}
  ]
}`

func TestMarginService_PlaceIsolatedOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	requester := mocks.NewMockAPIRequester(ctrl)
	service := binanceapi.NewMarginService(requester)

	requester.EXPECT().Request(ctx, "v1/margin/order", http.MethodPost, binanceapi.Params{
		"symbol":           "BTCUSDT",
		"side":             "SELL",
		"type":             "MARKET",
		"isIsolated":       "TRUE",
		"sideEffectType":   "AUTO_REPAY",
		"quantity":         "10",
		"newOrderRespType": "FULL",
	}, true).Return(newJSONResponse(t, orderResponseFull), nil)

	resp, err := service.PlaceIsolatedOrder(ctx, binanceapi.MarginOrder{
		Symbol:         "BTCUSDT",
		Side:           binanceapi.SideTypeSell,
		Type:           binanceapi.OrderTypeMarket,
		Quantity:       dec("10"),
		SideEffectType: binanceapi.SideEffectTypeAutoRepay,
	})
	if assert.NoError(t, err) {
		assert.Equal(t, int64(28), resp.OrderID)
		assert.Equal(t, binanceapi.OrderStatusTypeFilled, resp.Status)
		assert.True(t, resp.IsIsolated)
		assert.Equal(t, "5", resp.MarginBuyBorrowAmount.String())
		if assert.Len(t, resp.Fills, 1) {
			assert.Equal(t, "4000", resp.Fills[0].Price.String())
			assert.Equal(t, int64(56), resp.Fills[0].TradeID)
		}
	}
}

func TestMarginService_PlaceOrder_ForwardsIsolatedFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	requester := mocks.NewMockAPIRequester(ctrl)
	service := binanceapi.NewMarginService(requester)

	order := binanceapi.MarginOrder{
		Symbol:           "ETHUSDT",
		Side:             binanceapi.SideTypeBuy,
		Type:             binanceapi.OrderTypeLimitMaker,
		Quantity:         dec("0.5"),
		Price:            dec("1500"),
		NewOrderRespType: binanceapi.NewOrderRespTypeRESULT,
	}

	for _, isolated := range []bool{false, true} {
		expected := binanceapi.BuildMarginOrderParams(order, isolated)
		requester.EXPECT().Request(ctx, "v1/margin/order", http.MethodPost, expected, true).
			Return(newJSONResponse(t, `{"symbol":"ETHUSDT","orderId":1,"clientOrderId":"a","transactTime":1}`), nil)

		resp, err := service.PlaceOrder(ctx, order, isolated)
		assert.NoError(t, err)
		assert.Equal(t, "ETHUSDT", resp.Symbol)
	}
}

func TestMarginService_ErrorsPropagateUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	requester := mocks.NewMockAPIRequester(ctrl)
	service := binanceapi.NewMarginService(requester)

	apiErr := &binanceapi.ErrorResponse{Err: binanceapi.APIError{Code: -2010, Message: "Account has insufficient balance for requested action."}}
	requester.EXPECT().Request(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), true).Return(nil, apiErr).Times(4)

	_, err := service.PlaceOrder(ctx, binanceapi.MarginOrder{Symbol: "BTCUSDT", Type: binanceapi.OrderTypeMarket}, false)
	assert.Same(t, apiErr, err)

	_, err = service.CancelOrder(ctx, binanceapi.MarginCancelOrder{Symbol: "BTCUSDT", OrigClientOrderID: "x"}, false)
	assert.Same(t, apiErr, err)

	_, err = service.CancelAllOpenOrders(ctx, "BTCUSDT", true)
	assert.Same(t, apiErr, err)

	_, err = service.IsolatedTransfer(ctx, binanceapi.IsolatedTransfer{Asset: "BTC", Symbol: "BTCUSDT", Amount: 1})
	assert.Same(t, apiErr, err)
}

func TestMarginService_CancelOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	requester := mocks.NewMockAPIRequester(ctrl)
	service := binanceapi.NewMarginService(requester)

	orderID := int64(43)
	requester.EXPECT().Request(ctx, "v1/margin/order", http.MethodDelete, binanceapi.Params{
		"symbol":            "LTCBTC",
		"isIsolated":        "TRUE",
		"origClientOrderId": "myOrder1",
	}, true).Return(newJSONResponse(t, `{
	  "symbol": "LTCBTC",
	  "isIsolated": true,
	  "orderId": 28,
	  "origClientOrderId": "myOrder1",
	  "clientOrderId": "cancelMyOrder1",
	  "price": "1.00000000",
	  "origQty": "10.00000000",
	  "executedQty": "8.00000000",
	  "cummulativeQuoteQty": "8.00000000",
	  "status": "CANCELED",
	  "timeInForce": "GTC",
	  "type": "LIMIT",
	  "side": "SELL"
	}`), nil)

	resp, err := service.CancelOrder(ctx, binanceapi.MarginCancelOrder{
		Symbol:            "LTCBTC",
		OrderID:           &orderID,
		OrigClientOrderID: "myOrder1",
	}, true)
	if assert.NoError(t, err) {
		assert.Equal(t, "myOrder1", resp.OrigClientOrderID)
		assert.Equal(t, binanceapi.OrderStatusTypeCanceled, resp.Status)
		assert.Equal(t, "8", resp.ExecutedQuantity.String())
	}
}

func TestMarginService_CancelAllOpenOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	requester := mocks.NewMockAPIRequester(ctrl)
	service := binanceapi.NewMarginService(requester)

	requester.EXPECT().Request(ctx, "v1/margin/openOrders", http.MethodDelete, binanceapi.Params{
		"symbol":     "BTCUSDT",
		"isIsolated": "FALSE",
	}, true).Return(newJSONResponse(t, `[
	  {"symbol": "BTCUSDT", "isIsolated": false, "orderId": 11, "status": "CANCELED", "type": "LIMIT", "side": "BUY"},
	  {"symbol": "BTCUSDT", "isIsolated": false, "orderId": 12, "status": "CANCELED", "type": "LIMIT", "side": "SELL"}
	]`), nil)

	orders, err := service.CancelAllOpenOrders(ctx, "BTCUSDT", false)
	if assert.NoError(t, err) && assert.Len(t, orders, 2) {
		assert.Equal(t, int64(11), orders[0].OrderID)
		assert.Equal(t, int64(12), orders[1].OrderID)
	}
}

func TestMarginService_IsolatedTransfer(t *testing.T) {
	ctx := context.Background()

	newTransfer := func(amount interface{}) binanceapi.IsolatedTransfer {
		return binanceapi.IsolatedTransfer{
			Asset:  "USDT",
			Symbol: "BTCUSDT",
			From:   binanceapi.AccountTypeSpot,
			To:     binanceapi.AccountTypeIsolatedMargin,
			Amount: amount,
		}
	}

	expectTransfer := func(requester *mocks.MockAPIRequester, amount string) {
		requester.EXPECT().Request(ctx, "v1/margin/isolated/transfer", http.MethodPost, binanceapi.Params{
			"asset":     "USDT",
			"symbol":    "BTCUSDT",
			"transFrom": "SPOT",
			"transTo":   "ISOLATED_MARGIN",
			"amount":    amount,
		}, true).Return(newJSONResponse(t, `{"tranId": 100000001}`), nil)
	}

	t.Run("numeric amount is formatted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)
		expectTransfer(requester, "0.10000000")

		resp, err := binanceapi.NewMarginService(requester).IsolatedTransfer(ctx, newTransfer(0.1))
		if assert.NoError(t, err) {
			assert.Equal(t, int64(100000001), resp.TranID)
		}
	})

	t.Run("string amount is forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)
		expectTransfer(requester, "0.1")

		_, err := binanceapi.NewMarginService(requester).IsolatedTransfer(ctx, newTransfer("0.1"))
		assert.NoError(t, err)
	})

	t.Run("non-numeric amount warns and is still sent", func(t *testing.T) {
		hook := logtest.NewGlobal()
		defer hook.Reset()

		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)
		expectTransfer(requester, "abc")

		_, err := binanceapi.NewMarginService(requester).IsolatedTransfer(ctx, newTransfer("abc"))
		assert.NoError(t, err)

		entry := hook.LastEntry()
		if assert.NotNil(t, entry) {
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Contains(t, entry.Message, "abc")
		}
	})

	t.Run("nan amount warns instead of panicking", func(t *testing.T) {
		hook := logtest.NewGlobal()
		defer hook.Reset()

		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)
		expectTransfer(requester, "NaN")

		assert.NotPanics(t, func() {
			_, err := binanceapi.NewMarginService(requester).IsolatedTransfer(ctx, newTransfer(math.NaN()))
			assert.NoError(t, err)
		})

		entry := hook.LastEntry()
		if assert.NotNil(t, entry) {
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Contains(t, entry.Message, "NaN")
		}
	})

	t.Run("strict mode rejects infinite amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)

		service := binanceapi.NewMarginService(requester)
		service.StrictTransferAmount = true

		_, err := service.IsolatedTransfer(ctx, newTransfer(math.Inf(1)))
		assert.True(t, errors.Is(err, binanceapi.ErrInvalidTransferAmount))
	})

	t.Run("unsigned amount is formatted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)
		expectTransfer(requester, "5.00000000")

		_, err := binanceapi.NewMarginService(requester).IsolatedTransfer(ctx, newTransfer(uint32(5)))
		assert.NoError(t, err)
	})

	t.Run("strict mode rejects non-numeric amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requester := mocks.NewMockAPIRequester(ctrl)

		service := binanceapi.NewMarginService(requester)
		service.StrictTransferAmount = true

		_, err := service.IsolatedTransfer(ctx, newTransfer("abc"))
		assert.True(t, errors.Is(err, binanceapi.ErrInvalidTransferAmount))
	})
}

func TestMarginService_DecodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requester := mocks.NewMockAPIRequester(ctrl)
	requester.EXPECT().Request(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(newJSONResponse(t, `<html>gateway timeout</html>`), nil)

	_, err := binanceapi.NewMarginService(requester).CancelAllOpenOrders(context.Background(), "BTCUSDT", false)
	assert.Error(t, err)
}
