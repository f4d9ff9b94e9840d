package httptesting

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

func BuildResponse(code int, payload []byte) *http.Response {
	return &http.Response{
		StatusCode:    code,
		Status:        http.StatusText(code),
		Header:        http.Header{},
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
	}
}

func BuildResponseString(code int, payload string) *http.Response {
	return BuildResponse(code, []byte(payload))
}

// BuildResponseJson marshals data and sets the json content type, it panics when data can not be marshaled.
func BuildResponseJson(code int, data interface{}) *http.Response {
	payload, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	resp := BuildResponse(code, payload)
	SetHeader(resp, "Content-Type", "application/json")
	return resp
}

func SetHeader(resp *http.Response, name string, value string) *http.Response {
	if resp.Header == nil {
		resp.Header = http.Header{}
	}

	resp.Header.Set(name, value)
	return resp
}
