package binanceapi

import (
	"github.com/shopspring/decimal"
)

const (
	paramSymbol           = "symbol"
	paramSide             = "side"
	paramType             = "type"
	paramIsIsolated       = "isIsolated"
	paramSideEffectType   = "sideEffectType"
	paramNewOrderRespType = "newOrderRespType"
	paramTimeInForce      = "timeInForce"
	paramQuantity         = "quantity"
	paramQuoteOrderQty    = "quoteOrderQty"
	paramPrice            = "price"
	paramStopPrice        = "stopPrice"
	paramIcebergQty       = "icebergQty"
	paramNewClientOrderID = "newClientOrderId"
	paramOrderID          = "orderId"
	paramOrigClientOrder  = "origClientOrderId"
)

// MarginOrder carries the arguments of a margin order placement.
// Which of the optional fields reach the exchange is decided by the order type,
// see marginOrderTypeRules.
type MarginOrder struct {
	Symbol string
	Side   SideType
	Type   OrderType

	Quantity      *decimal.Decimal
	QuoteOrderQty *decimal.Decimal
	Price         *decimal.Decimal
	StopPrice     *decimal.Decimal
	IcebergQty    *decimal.Decimal

	// TimeInForce defaults to GTC
	TimeInForce TimeInForceType

	NewClientOrderID string

	// NewOrderRespType overrides the default response format of the order type when set
	NewOrderRespType NewOrderRespType

	// SideEffectType defaults to NO_SIDE_EFFECT
	SideEffectType SideEffectType

	// SendOptionalFields adds NewClientOrderID and IcebergQty to the request when they are set.
	// It is off by default, the request then carries only the fields of the order type.
	SendOptionalFields bool
}

type marginOrderTypeRule struct {
	// fields are sent when the order has a value for them
	fields []string

	// optionalFields are sent only with MarginOrder.SendOptionalFields and a value set
	optionalFields []string

	// quoteOrderQty lets quoteOrderQty replace quantity
	quoteOrderQty bool

	respType NewOrderRespType
}

var marginOrderTypeRules = map[OrderType]marginOrderTypeRule{
	OrderTypeLimit: {
		fields:         []string{paramTimeInForce, paramQuantity, paramPrice},
		optionalFields: []string{paramIcebergQty, paramNewClientOrderID},
		respType:       NewOrderRespTypeFULL,
	},
	OrderTypeMarket: {
		fields:         []string{paramQuantity},
		optionalFields: []string{paramNewClientOrderID},
		quoteOrderQty:  true,
		respType:       NewOrderRespTypeFULL,
	},
	OrderTypeStopLoss: {
		fields:         []string{paramQuantity, paramStopPrice},
		optionalFields: []string{paramNewClientOrderID},
		respType:       NewOrderRespTypeACK,
	},
	OrderTypeStopLossLimit: {
		fields:         []string{paramTimeInForce, paramQuantity, paramPrice, paramStopPrice},
		optionalFields: []string{paramIcebergQty, paramNewClientOrderID},
		respType:       NewOrderRespTypeACK,
	},
	OrderTypeTakeProfit: {
		fields:         []string{paramQuantity, paramStopPrice},
		optionalFields: []string{paramNewClientOrderID},
		respType:       NewOrderRespTypeACK,
	},
	OrderTypeTakeProfitLimit: {
		fields:         []string{paramTimeInForce, paramQuantity, paramPrice, paramStopPrice},
		optionalFields: []string{paramIcebergQty, paramNewClientOrderID},
		respType:       NewOrderRespTypeACK,
	},
	OrderTypeLimitMaker: {
		fields:         []string{paramQuantity, paramPrice},
		optionalFields: []string{paramNewClientOrderID},
		respType:       NewOrderRespTypeACK,
	},
}

// BuildMarginOrderParams assembles the parameters of POST /sapi/v1/margin/order.
//
// Unknown order types are passed through with only the always-included fields,
// the exchange is left to reject them.
func BuildMarginOrderParams(order MarginOrder, isolated bool) Params {
	sideEffectType := order.SideEffectType
	if sideEffectType == "" {
		sideEffectType = SideEffectTypeNoSideEffect
	}

	params := Params{
		paramSymbol:         order.Symbol,
		paramSide:           string(order.Side),
		paramType:           string(order.Type),
		paramIsIsolated:     isolatedFlag(isolated),
		paramSideEffectType: string(sideEffectType),
	}

	rule, known := marginOrderTypeRules[order.Type]
	if known {
		for _, field := range rule.fields {
			if field == paramQuantity && rule.quoteOrderQty {
				if key, value, ok := selectOrderQuantity(order.Quantity, order.QuoteOrderQty); ok {
					params[key] = value
				}
				continue
			}

			if value, ok := order.fieldValue(field); ok {
				params[field] = value
			}
		}

		if order.SendOptionalFields {
			for _, field := range rule.optionalFields {
				if value, ok := order.fieldValue(field); ok {
					params[field] = value
				}
			}
		}
	}

	if respType, ok := selectResponseType(order.NewOrderRespType, rule.respType); ok {
		params[paramNewOrderRespType] = string(respType)
	}

	return params
}

func (o MarginOrder) fieldValue(field string) (string, bool) {
	switch field {
	case paramTimeInForce:
		if o.TimeInForce == "" {
			return string(TimeInForceTypeGTC), true
		}
		return string(o.TimeInForce), true

	case paramQuantity:
		return decimalValue(o.Quantity)

	case paramQuoteOrderQty:
		return decimalValue(o.QuoteOrderQty)

	case paramPrice:
		return decimalValue(o.Price)

	case paramStopPrice:
		return decimalValue(o.StopPrice)

	case paramIcebergQty:
		return decimalValue(o.IcebergQty)

	case paramNewClientOrderID:
		return o.NewClientOrderID, o.NewClientOrderID != ""
	}

	return "", false
}

func decimalValue(v *decimal.Decimal) (string, bool) {
	if v == nil {
		return "", false
	}

	return v.String(), true
}

// selectOrderQuantity picks quoteOrderQty over quantity when both are given.
func selectOrderQuantity(quantity, quoteOrderQty *decimal.Decimal) (string, string, bool) {
	if quoteOrderQty != nil {
		return paramQuoteOrderQty, quoteOrderQty.String(), true
	}

	if quantity != nil {
		return paramQuantity, quantity.String(), true
	}

	return "", "", false
}

// selectResponseType returns the explicit response type if set, otherwise the default of the order type.
func selectResponseType(explicit, defaultType NewOrderRespType) (NewOrderRespType, bool) {
	if explicit != "" {
		return explicit, true
	}

	return defaultType, defaultType != ""
}
