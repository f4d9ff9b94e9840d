package binanceapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMarginCancelOrderParams(t *testing.T) {
	orderID := int64(28)

	tests := []struct {
		name     string
		cancel   MarginCancelOrder
		isolated bool
		expected Params
	}{
		{
			name:   "order id",
			cancel: MarginCancelOrder{Symbol: "BNBUSDT", OrderID: &orderID},
			expected: Params{
				"symbol":     "BNBUSDT",
				"isIsolated": "FALSE",
				"orderId":    "28",
			},
		},
		{
			name:     "orig client order id wins",
			cancel:   MarginCancelOrder{Symbol: "BNBUSDT", OrderID: &orderID, OrigClientOrderID: "myOrder1"},
			isolated: true,
			expected: Params{
				"symbol":            "BNBUSDT",
				"isIsolated":        "TRUE",
				"origClientOrderId": "myOrder1",
			},
		},
		{
			name:   "new client order id is independent",
			cancel: MarginCancelOrder{Symbol: "BNBUSDT", OrderID: &orderID, NewClientOrderID: "cancelMyOrder1"},
			expected: Params{
				"symbol":           "BNBUSDT",
				"isIsolated":       "FALSE",
				"orderId":          "28",
				"newClientOrderId": "cancelMyOrder1",
			},
		},
		{
			name:   "no identifier",
			cancel: MarginCancelOrder{Symbol: "BNBUSDT"},
			expected: Params{
				"symbol":     "BNBUSDT",
				"isIsolated": "FALSE",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildMarginCancelOrderParams(tt.cancel, tt.isolated))
		})
	}
}

func TestBuildMarginCancelOpenOrdersParams(t *testing.T) {
	assert.Equal(t, Params{"symbol": "ETHBTC", "isIsolated": "TRUE"}, BuildMarginCancelOpenOrdersParams("ETHBTC", true))
	assert.Equal(t, Params{"symbol": "ETHBTC", "isIsolated": "FALSE"}, BuildMarginCancelOpenOrdersParams("ETHBTC", false))
}
