package bybit

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bybit-trade-bot/trading"
)

const (
	categoryLinear     = "linear"
	accountTypeUnified = "UNIFIED"
	positionIdxOneWay  = 0

	defaultRecvWindow = int64(5000)

	setLeveragePath     = "/v5/position/set-leverage"
	instrumentsInfoPath = "/v5/market/instruments-info"
	tickersPath         = "/v5/market/tickers"
	orderCreatePath     = "/v5/order/create"
	orderCancelPath     = "/v5/order/cancel"
	orderCancelAllPath  = "/v5/order/cancel-all"
	positionListPath    = "/v5/position/list"
	walletBalancePath   = "/v5/account/wallet-balance"
)

// Config selects the network and carries the credentials. Domain and
// TLD override the default bybit.com host, mirroring the vendor API's
// regional endpoints. BaseURL, when set, bypasses host resolution
// entirely (used by tests and self-hosted proxies).
type Config struct {
	Testnet    bool
	Demo       bool
	APIKey     string
	APISecret  string
	Domain     string
	TLD        string
	BaseURL    string
	RecvWindow int64
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	domain := c.Domain
	if domain == "" {
		domain = "bybit"
	}
	tld := c.TLD
	if tld == "" {
		tld = "com"
	}
	sub := "api"
	switch {
	case c.Testnet:
		sub = "api-testnet"
	case c.Demo:
		sub = "api-demo"
	}
	return fmt.Sprintf("https://%s.%s.%s", sub, domain, tld)
}

type client struct {
	config     Config
	baseURL    string
	recvWindow int64
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient builds a trading client for the network selected by
// config. The connection handle lives for the process lifetime, is
// safe for concurrent use and may be shared across handlers; pass nil
// to use http.DefaultClient.
func NewClient(config Config, httpClient *http.Client) trading.Exchange {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	recvWindow := config.RecvWindow
	if recvWindow <= 0 {
		recvWindow = defaultRecvWindow
	}
	return &client{
		config:     config,
		baseURL:    config.baseURL(),
		recvWindow: recvWindow,
		httpClient: httpClient,
		log:        logrus.WithField("component", "bybit"),
	}
}

// apiError is a non-zero retCode in the response envelope.
type apiError struct {
	Code int
	Msg  string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("retCode %d: %s", e.Code, e.Msg)
}

type envelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

func (c *client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, query.Encode(), nil, result)
}

func (c *client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "", payload, result)
}

func (c *client) do(ctx context.Context, method, path, query string, body []byte, result interface{}) error {
	u := c.baseURL + path
	if query != "" {
		u += "?" + query
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}

	payload := query
	if body != nil {
		payload = string(body)
	}
	timestamp := time.Now().UnixMilli()
	signature := c.sign(payload, timestamp)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-BAPI-API-KEY", c.config.APIKey)
	req.Header.Set("X-BAPI-TIMESTAMP", strconv.FormatInt(timestamp, 10))
	req.Header.Set("X-BAPI-SIGN", signature)
	req.Header.Set("X-BAPI-SIGN-TYPE", "2")
	req.Header.Set("X-BAPI-RECV-WINDOW", strconv.FormatInt(c.recvWindow, 10))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("got http response code %d and body %s", res.StatusCode, resBody)
	}

	var env envelope
	if err := json.Unmarshal(resBody, &env); err != nil {
		return errors.Wrapf(err, "decode response body %s", resBody)
	}
	if env.RetCode != 0 {
		return &apiError{Code: env.RetCode, Msg: env.RetMsg}
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	}).Debug("request completed")

	if result != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return errors.Wrap(err, "decode result")
		}
	}
	return nil
}

// sign builds a fresh HMAC per call; the webhook server drives the
// shared client from one goroutine per request.
func (c *client) sign(payload string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(c.config.APISecret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10) + c.config.APIKey + strconv.FormatInt(c.recvWindow, 10) + payload))

	return hex.EncodeToString(mac.Sum(nil))
}
