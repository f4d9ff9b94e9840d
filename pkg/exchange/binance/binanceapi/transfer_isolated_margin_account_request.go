package binanceapi

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSpot           AccountType = "SPOT"
	AccountTypeIsolatedMargin AccountType = "ISOLATED_MARGIN"
)

const transferAmountDecimals = 8

var ErrInvalidTransferAmount = errors.New("transfer amount is not numeric")

// IsolatedTransfer moves an asset between the spot wallet and an isolated margin account.
type IsolatedTransfer struct {
	Asset  string
	Symbol string

	// From, To: "SPOT", "ISOLATED_MARGIN"
	From AccountType
	To   AccountType

	// Amount is forwarded as-is when it is already a string,
	// numeric representations are formatted with 8 decimal places.
	Amount interface{}
}

// BuildIsolatedTransferParams assembles the parameters of POST /sapi/v1/margin/isolated/transfer.
// The returned bool reports whether the normalized amount is numeric.
func BuildIsolatedTransferParams(transfer IsolatedTransfer) (Params, bool) {
	amount := FormatTransferAmount(transfer.Amount)
	return Params{
		"asset":     transfer.Asset,
		"symbol":    transfer.Symbol,
		"transFrom": string(transfer.From),
		"transTo":   string(transfer.To),
		"amount":    amount,
	}, isNumeric(amount)
}

// FormatTransferAmount normalizes a transfer amount into its wire representation.
// Numeric kinds and booleans (1 or 0) are formatted with 8 decimal places,
// NaN and infinities keep their float spelling so the numeric check rejects them.
func FormatTransferAmount(amount interface{}) string {
	switch v := amount.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return string(v)
	case decimal.Decimal:
		return v.StringFixed(transferAmountDecimals)
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return v.StringFixed(transferAmountDecimals)
	}

	rv := reflect.ValueOf(amount)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()

	case reflect.Bool:
		if rv.Bool() {
			return decimal.NewFromInt(1).StringFixed(transferAmountDecimals)
		}
		return decimal.Zero.StringFixed(transferAmountDecimals)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()).StringFixed(transferAmountDecimals)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0).StringFixed(transferAmountDecimals)

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}

		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)).StringFixed(transferAmountDecimals)
		}
		return decimal.NewFromFloat(f).StringFixed(transferAmountDecimals)
	}

	return fmt.Sprintf("%v", amount)
}

func isNumeric(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}
