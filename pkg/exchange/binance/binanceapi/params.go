package binanceapi

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Params is the parameter mapping handed to the request dispatcher.
// Keys are the exchange's documented field names.
type Params map[string]interface{}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

// Values encodes the mapping into url.Values.
func (p Params) Values() url.Values {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, formatParamValue(v))
	}

	return values
}

func formatParamValue(v interface{}) string {
	switch vv := v.(type) {
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	case bool:
		return strconv.FormatBool(vv)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case uint64:
		return strconv.FormatUint(vv, 10)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	}

	return fmt.Sprintf("%v", v)
}

// isolatedFlag serializes the isolated margin switch the way the margin endpoints expect it.
func isolatedFlag(isolated bool) string {
	if isolated {
		return "TRUE"
	}

	return "FALSE"
}
