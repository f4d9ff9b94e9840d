package binanceapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
)

// APIError is the error body returned by the exchange, e.g. {"code":-2010,"msg":"Account has insufficient balance"}
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
}

// ErrorResponse is the custom error type that is returned if the API returns an
// error.
type ErrorResponse struct {
	*requestgen.Response
	Err APIError
}

func (r *ErrorResponse) Error() string {
	if r.Response == nil || r.Response.Response == nil {
		return fmt.Sprintf("%d %s", r.Err.Code, r.Err.Message)
	}

	httpResp := r.Response.Response
	if httpResp.Request == nil {
		return fmt.Sprintf("%d %d %s", httpResp.StatusCode, r.Err.Code, r.Err.Message)
	}

	return fmt.Sprintf("%s %s: %d %d %s",
		httpResp.Request.Method,
		httpResp.Request.URL.Path,
		httpResp.StatusCode,
		r.Err.Code,
		r.Err.Message,
	)
}

// ToErrorResponse tries to convert/parse the server response to the standard Error interface object
func ToErrorResponse(response *requestgen.Response) (errorResponse *ErrorResponse, err error) {
	errorResponse = &ErrorResponse{Response: response}

	contentType := response.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "json"):
		if err := json.Unmarshal(response.Body, &errorResponse.Err); err != nil {
			return errorResponse, errors.Wrapf(err, "failed to decode json for response: %d %s", response.StatusCode, string(response.Body))
		}
		return errorResponse, nil

	case strings.HasPrefix(contentType, "text/"), contentType == "":
		errorResponse.Err.Message = string(response.Body)
		return errorResponse, nil
	}

	return errorResponse, fmt.Errorf("unexpected response content type %s", contentType)
}
