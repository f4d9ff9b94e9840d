package binanceapi

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/c9s/bbgo-margin/pkg/envvar"
)

const defaultHTTPTimeout = time.Second * 15
const RestBaseURL = "https://api.binance.com"
const DefaultRecvWindow = 5000

// margin endpoints live under the sapi namespace
const sapiPrefix = "/sapi/"

var log = logrus.WithFields(logrus.Fields{
	"exchange": "binance",
	"api":      "margin",
})

var dumpRequests = false

func init() {
	dumpRequests, _ = envvar.Bool("DEBUG_BINANCE_API")
}

//go:generate mockgen -destination=mocks/mock_requester.go -package=mocks . APIRequester

// APIRequester sends a parameter mapping to a path of the margin namespace.
// Signed requests carry the timestamp, recvWindow and signature parameters.
type APIRequester interface {
	Request(ctx context.Context, path, method string, params Params, signed bool) (*requestgen.Response, error)
}

type RestClient struct {
	requestgen.BaseAPIClient

	key, secret string
	privateKey  ed25519.PrivateKey

	recvWindow int

	// timeOffset is the server time minus the local time, in milliseconds
	timeOffset int64

	limiter *rate.Limiter
}

func NewClient(baseURL string) *RestClient {
	if len(baseURL) == 0 {
		baseURL, _ = envvar.String("BINANCE_API_BASE_URL", RestBaseURL)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		panic(err)
	}

	timeout, _ := envvar.Duration("BINANCE_API_HTTP_TIMEOUT", defaultHTTPTimeout)
	recvWindow, _ := envvar.Int("BINANCE_API_RECV_WINDOW", DefaultRecvWindow)

	return &RestClient{
		BaseAPIClient: requestgen.BaseAPIClient{
			BaseURL: u,
			HttpClient: &http.Client{
				Timeout: timeout,
			},
		},
		recvWindow: recvWindow,
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
	}
}

// Auth sets the api key and the HMAC secret.
func (c *RestClient) Auth(key, secret string) {
	c.key = key
	// pragma: allowlist nextline secret
	c.secret = secret
}

// AuthEd25519 sets the api key and an Ed25519 private key, signatures are generated with the private key.
func (c *RestClient) AuthEd25519(key string, privateKey ed25519.PrivateKey) {
	c.key = key
	c.privateKey = privateKey
}

func (c *RestClient) SetRecvWindow(ms int) {
	c.recvWindow = ms
}

func (c *RestClient) SetRateLimiter(limiter *rate.Limiter) {
	c.limiter = limiter
}

func (c *RestClient) TimeOffset() time.Duration {
	return time.Duration(atomic.LoadInt64(&c.timeOffset)) * time.Millisecond
}

type ServerTime struct {
	ServerTime int64 `json:"serverTime"`
}

// QueryServerTime queries GET /api/v3/time
func (c *RestClient) QueryServerTime(ctx context.Context) (time.Time, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, "/api/v3/time", nil, nil)
	if err != nil {
		return time.Time{}, err
	}

	response, err := c.SendRequest(req)
	if err != nil {
		return time.Time{}, err
	}

	var serverTime ServerTime
	if err := response.DecodeJSON(&serverTime); err != nil {
		return time.Time{}, errors.Wrapf(err, "unable to decode server time: %s", response.Body)
	}

	return time.UnixMilli(serverTime.ServerTime), nil
}

// SetTimeOffsetFromServer aligns the request timestamps with the exchange clock.
func (c *RestClient) SetTimeOffsetFromServer(ctx context.Context) error {
	localTime := time.Now()
	serverTime, err := c.QueryServerTime(ctx)
	if err != nil {
		return err
	}

	// take the middle point of the round trip as the local reference
	localTime = localTime.Add(time.Since(localTime) / 2)
	offset := serverTime.UnixMilli() - localTime.UnixMilli()
	atomic.StoreInt64(&c.timeOffset, offset)
	log.Infof("binance server time offset: %dms", offset)
	return nil
}

// Request implements APIRequester, path is relative to the sapi namespace, e.g. "v1/margin/order".
func (c *RestClient) Request(ctx context.Context, path, method string, params Params, signed bool) (*requestgen.Response, error) {
	refURL := sapiPrefix + strings.TrimPrefix(path, "/")

	var values url.Values
	if params != nil {
		values = params.Values()
	}

	var req *http.Request
	var err error
	if signed {
		req, err = c.NewAuthenticatedRequest(ctx, method, refURL, values, nil)
	} else {
		req, err = c.NewRequest(ctx, method, refURL, values, nil)
	}

	if err != nil {
		return nil, err
	}

	return c.SendRequest(req)
}

// NewRequest create new API request. Relative url can be provided in refURL.
func (c *RestClient) NewRequest(ctx context.Context, method, refURL string, params url.Values, payload interface{}) (*http.Request, error) {
	rel, err := url.Parse(refURL)
	if err != nil {
		return nil, err
	}

	if params != nil {
		rel.RawQuery = params.Encode()
	}

	body, err := castPayload(payload)
	if err != nil {
		return nil, err
	}

	pathURL := c.BaseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if len(c.key) > 0 {
		req.Header.Add("X-MBX-APIKEY", c.key)
	}

	return req, nil
}

// NewAuthenticatedRequest creates new http request for signed routes.
func (c *RestClient) NewAuthenticatedRequest(ctx context.Context, method, refURL string, params url.Values, payload interface{}) (*http.Request, error) {
	if len(c.key) == 0 {
		return nil, errors.New("empty api key")
	}

	if len(c.secret) == 0 && c.privateKey == nil {
		return nil, errors.New("empty api secret")
	}

	rel, err := url.Parse(refURL)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}

	query.Set("timestamp", strconv.FormatInt(c.timestamp(), 10))
	if c.recvWindow > 0 {
		query.Set("recvWindow", strconv.Itoa(c.recvWindow))
	}

	body, err := castPayload(payload)
	if err != nil {
		return nil, err
	}

	rawQuery := query.Encode()
	signature := c.sign(rawQuery + string(body))
	rel.RawQuery = rawQuery + "&signature=" + url.QueryEscape(signature)

	pathURL := c.BaseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Add("X-MBX-APIKEY", c.key)
	if len(body) > 0 {
		req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	}

	return req, nil
}

// SendRequest sends the request to the API server and handle the response
func (c *RestClient) SendRequest(req *http.Request) (*requestgen.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	if dumpRequests {
		if dump, err := httputil.DumpRequestOut(req, true); err == nil {
			log.Debugf("binance api request: %s", dump)
		}
	}

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		recordLatencyMetrics(req, 0, time.Since(start))
		return nil, err
	}

	defer resp.Body.Close()

	response, err := requestgen.NewResponse(resp)
	recordLatencyMetrics(req, resp.StatusCode, time.Since(start))
	if err != nil {
		return response, err
	}

	if response.IsError() {
		errorResponse, err := ToErrorResponse(response)
		if err != nil {
			return response, err
		}

		return response, errorResponse
	}

	return response, nil
}

func (c *RestClient) timestamp() int64 {
	return time.Now().UnixMilli() + atomic.LoadInt64(&c.timeOffset)
}

func (c *RestClient) sign(payload string) string {
	if c.privateKey != nil {
		return GenerateSignatureEd25519(payload, c.privateKey)
	}

	return GenerateSignatureHmacSHA256(payload, c.secret)
}

func castPayload(payload interface{}) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	switch v := payload.(type) {
	case string:
		return []byte(v), nil

	case []byte:
		return v, nil

	}
	return json.Marshal(payload)
}
