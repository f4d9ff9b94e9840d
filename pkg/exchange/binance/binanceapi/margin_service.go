package binanceapi

import (
	"context"
	"net/http"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	marginOrderPath            = "v1/margin/order"
	marginOpenOrdersPath       = "v1/margin/openOrders"
	marginIsolatedTransferPath = "v1/margin/isolated/transfer"
)

type MarginFill struct {
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"qty"`
	Commission      decimal.Decimal `json:"commission"`
	CommissionAsset string          `json:"commissionAsset"`
	TradeID         int64           `json:"tradeId"`
}

// MarginOrderResponse covers the ACK, RESULT and FULL response formats,
// fields missing from the shorter formats stay zero.
type MarginOrderResponse struct {
	Symbol                   string           `json:"symbol"`
	OrderID                  int64            `json:"orderId"`
	ClientOrderID            string           `json:"clientOrderId"`
	TransactTime             int64            `json:"transactTime"`
	IsIsolated               bool             `json:"isIsolated"`
	Price                    decimal.Decimal  `json:"price"`
	OrigQuantity             decimal.Decimal  `json:"origQty"`
	ExecutedQuantity         decimal.Decimal  `json:"executedQty"`
	CummulativeQuoteQuantity decimal.Decimal  `json:"cummulativeQuoteQty"`
	Status                   OrderStatusType  `json:"status"`
	TimeInForce              TimeInForceType  `json:"timeInForce"`
	Type                     OrderType        `json:"type"`
	Side                     SideType         `json:"side"`
	MarginBuyBorrowAmount    *decimal.Decimal `json:"marginBuyBorrowAmount,omitempty"`
	MarginBuyBorrowAsset     string           `json:"marginBuyBorrowAsset,omitempty"`
	Fills                    []MarginFill     `json:"fills,omitempty"`
}

type MarginCancelOrderResponse struct {
	Symbol                   string          `json:"symbol"`
	IsIsolated               bool            `json:"isIsolated"`
	OrderID                  int64           `json:"orderId"`
	OrigClientOrderID        string          `json:"origClientOrderId"`
	ClientOrderID            string          `json:"clientOrderId"`
	Price                    decimal.Decimal `json:"price"`
	OrigQuantity             decimal.Decimal `json:"origQty"`
	ExecutedQuantity         decimal.Decimal `json:"executedQty"`
	CummulativeQuoteQuantity decimal.Decimal `json:"cummulativeQuoteQty"`
	Status                   OrderStatusType `json:"status"`
	TimeInForce              TimeInForceType `json:"timeInForce"`
	Type                     OrderType       `json:"type"`
	Side                     SideType        `json:"side"`
}

type IsolatedTransferResponse struct {
	TranID int64 `json:"tranId"`
}

// MarginService builds the margin trading requests and dispatches them through the APIRequester.
// It keeps no state between calls and never retries.
type MarginService struct {
	client APIRequester

	// StrictTransferAmount rejects non-numeric transfer amounts before dispatch
	// instead of logging a warning and sending them anyway.
	StrictTransferAmount bool
}

func NewMarginService(client APIRequester) *MarginService {
	return &MarginService{client: client}
}

func (c *RestClient) NewMarginService() *MarginService {
	return NewMarginService(c)
}

// PlaceIsolatedOrder places the order on the isolated margin account of the symbol.
func (s *MarginService) PlaceIsolatedOrder(ctx context.Context, order MarginOrder) (*MarginOrderResponse, error) {
	return s.PlaceOrder(ctx, order, true)
}

// PlaceOrder places the order on the cross margin account, or the isolated one when isolated is true.
func (s *MarginService) PlaceOrder(ctx context.Context, order MarginOrder, isolated bool) (*MarginOrderResponse, error) {
	params := BuildMarginOrderParams(order, isolated)

	var resp MarginOrderResponse
	if err := s.dispatch(ctx, marginOrderPath, http.MethodPost, params, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *MarginService) CancelOrder(ctx context.Context, cancel MarginCancelOrder, isolated bool) (*MarginCancelOrderResponse, error) {
	params := BuildMarginCancelOrderParams(cancel, isolated)

	var resp MarginCancelOrderResponse
	if err := s.dispatch(ctx, marginOrderPath, http.MethodDelete, params, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CancelAllOpenOrders cancels every resting order of the symbol on the selected margin account.
func (s *MarginService) CancelAllOpenOrders(ctx context.Context, symbol string, isolated bool) ([]MarginCancelOrderResponse, error) {
	params := BuildMarginCancelOpenOrdersParams(symbol, isolated)

	var resp []MarginCancelOrderResponse
	if err := s.dispatch(ctx, marginOpenOrdersPath, http.MethodDelete, params, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// IsolatedTransfer transfers the asset between the spot wallet and the isolated margin account of the symbol.
func (s *MarginService) IsolatedTransfer(ctx context.Context, transfer IsolatedTransfer) (*IsolatedTransferResponse, error) {
	params, numeric := BuildIsolatedTransferParams(transfer)
	if !numeric {
		if s.StrictTransferAmount {
			return nil, errors.Wrapf(ErrInvalidTransferAmount, "amount %q (%T)", params["amount"], transfer.Amount)
		}

		log.Warnf("transfer amount expected numeric, got %T: %q", transfer.Amount, params["amount"])
	}

	var resp IsolatedTransferResponse
	if err := s.dispatch(ctx, marginIsolatedTransferPath, http.MethodPost, params, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// dispatch sends a signed request, errors of the requester are returned as they are.
func (s *MarginService) dispatch(ctx context.Context, path, method string, params Params, out interface{}) error {
	response, err := s.client.Request(ctx, path, method, params, true)
	if err != nil {
		return err
	}

	return decodeResponse(response, out)
}

func decodeResponse(response *requestgen.Response, out interface{}) error {
	if response == nil || len(response.Body) == 0 {
		return nil
	}

	if err := response.DecodeJSON(out); err != nil {
		return errors.Wrapf(err, "unable to decode margin api response: %s", response.Body)
	}

	return nil
}
