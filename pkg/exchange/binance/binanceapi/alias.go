package binanceapi

import (
	"github.com/adshao/go-binance/v2"
)

type SideType = binance.SideType

var SideTypeBuy = binance.SideTypeBuy
var SideTypeSell = binance.SideTypeSell

type OrderType = binance.OrderType

var OrderTypeLimit OrderType = binance.OrderTypeLimit
var OrderTypeMarket OrderType = binance.OrderTypeMarket
var OrderTypeLimitMaker OrderType = binance.OrderTypeLimitMaker
var OrderTypeStopLoss OrderType = binance.OrderTypeStopLoss
var OrderTypeStopLossLimit OrderType = binance.OrderTypeStopLossLimit
var OrderTypeTakeProfit OrderType = binance.OrderTypeTakeProfit
var OrderTypeTakeProfitLimit OrderType = binance.OrderTypeTakeProfitLimit

type TimeInForceType = binance.TimeInForceType

var TimeInForceTypeGTC TimeInForceType = binance.TimeInForceTypeGTC
var TimeInForceTypeIOC TimeInForceType = binance.TimeInForceTypeIOC
var TimeInForceTypeFOK TimeInForceType = binance.TimeInForceTypeFOK

type NewOrderRespType = binance.NewOrderRespType

var NewOrderRespTypeACK NewOrderRespType = binance.NewOrderRespTypeACK
var NewOrderRespTypeRESULT NewOrderRespType = binance.NewOrderRespTypeRESULT
var NewOrderRespTypeFULL NewOrderRespType = binance.NewOrderRespTypeFULL

type SideEffectType = binance.SideEffectType

var SideEffectTypeNoSideEffect SideEffectType = binance.SideEffectTypeNoSideEffect
var SideEffectTypeMarginBuy SideEffectType = binance.SideEffectTypeMarginBuy
var SideEffectTypeAutoRepay SideEffectType = binance.SideEffectTypeAutoRepay

type OrderStatusType = binance.OrderStatusType

var OrderStatusTypeNew OrderStatusType = binance.OrderStatusTypeNew
var OrderStatusTypePartiallyFilled OrderStatusType = binance.OrderStatusTypePartiallyFilled
var OrderStatusTypeFilled OrderStatusType = binance.OrderStatusTypeFilled
var OrderStatusTypeCanceled OrderStatusType = binance.OrderStatusTypeCanceled
var OrderStatusTypeRejected OrderStatusType = binance.OrderStatusTypeRejected
var OrderStatusTypeExpired OrderStatusType = binance.OrderStatusTypeExpired
