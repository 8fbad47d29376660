// Package mexc implements the coinfolio.Exchange and
// coinfolio.FundingSource interfaces on top of the MEXC REST API.
//
// The spot API mirrors the Binance one, the futures (contract) API has
// its own base URL and signing scheme.
package mexc

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/coinfolio"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL        = "https://api.mexc.com"
	defaultFuturesBaseURL = "https://contract.mexc.com"
)

// Client queries the MEXC REST API for one account.
type Client struct {
	apiKey    string
	apiSecret string

	// BaseURL and FuturesBaseURL can be pointed at a test server.
	BaseURL        string
	FuturesBaseURL string
	HTTP           *http.Client

	now func() time.Time
}

// New returns a client for the given account credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		apiKey:         apiKey,
		apiSecret:      apiSecret,
		BaseURL:        defaultBaseURL,
		FuturesBaseURL: defaultFuturesBaseURL,
		HTTP:           http.DefaultClient,
		now:            time.Now,
	}
}

// Name implements coinfolio.Exchange.
func (c *Client) Name() string { return "mexc" }

// jwget performs a GET request against the spot API and unmarshals the
// JSON response body into data. MEXC signs the query parameters in
// sorted order, which url.Values.Encode already guarantees.
func (c *Client) jwget(ctx context.Context, path string, params url.Values, signed bool, data any) error {
	if params == nil {
		params = url.Values{}
	}
	if signed {
		params.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	query := params.Encode()
	if signed {
		query += "&signature=" + c.sign(query)
	}

	addr := c.BaseURL + path
	if query != "" {
		addr += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-MEXC-APIKEY", c.apiKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v: %s", req.URL.Host, path, resp.Status, body)
	}
	return json.Unmarshal(body, data)
}

func (c *Client) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Balances implements coinfolio.Exchange. The spot balances are merged
// with the USDT margin parked on the futures account; a failing futures
// fetch degrades to spot only.
func (c *Client) Balances(ctx context.Context) ([]coinfolio.Balance, error) {
	var content struct {
		Balances []struct {
			Asset  string `json:"asset"`
			Free   string `json:"free"`
			Locked string `json:"locked"`
		} `json:"balances"`
	}
	if err := c.jwget(ctx, "/api/v3/account", nil, true, &content); err != nil {
		return nil, err
	}

	var balances []coinfolio.Balance
	for _, b := range content.Balances {
		free, _ := coinfolio.ParseQuantity(b.Free)
		locked, _ := coinfolio.ParseQuantity(b.Locked)
		balance := coinfolio.Balance{Asset: b.Asset, Free: free, Locked: locked}
		if balance.Total().IsPositive() {
			balances = append(balances, balance)
		}
	}

	futures, err := c.FuturesBalance(ctx)
	if err != nil {
		log.Printf("warning: cannot fetch mexc futures balance: %v", err)
	} else if futures.IsPositive() {
		balances = append(balances, coinfolio.Balance{Asset: "USDT", Locked: futures})
	}
	return balances, nil
}

// FuturesBalance returns the USDT equity held on the futures account.
//
// The contract API answer has changed shape over time, so the balance is
// probed by json path: totalBalance when present, otherwise
// availableBalance plus the unrealized PnL.
func (c *Client) FuturesBalance(ctx context.Context) (coinfolio.Quantity, error) {
	jobj, err := c.futuresGet(ctx, "/api/v1/private/account/asset/USDT")
	if err != nil {
		return coinfolio.Q(0), err
	}

	if total, err := jsonNumber(jobj, "$.data.totalBalance"); err == nil {
		return coinfolio.Q(total), nil
	}
	available, err := jsonNumber(jobj, "$.data.availableBalance")
	if err != nil {
		return coinfolio.Q(0), fmt.Errorf("no balance in futures asset answer: %w", err)
	}
	if pnl, err := jsonNumber(jobj, "$.data.unrealizedPnl"); err == nil {
		available += pnl
	}
	return coinfolio.Q(available), nil
}

// jsonNumber extracts one numeric value from a decoded JSON document.
func jsonNumber(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, err
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer, keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}

// futuresGet performs a signed GET against the contract API. The
// signature covers apiKey + timestamp + query, sent as headers.
func (c *Client) futuresGet(ctx context.Context, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FuturesBaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("ApiKey", c.apiKey)
	req.Header.Set("Request-Time", timestamp)
	req.Header.Set("Signature", c.sign(c.apiKey+timestamp))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v: %s", req.URL.Host, path, resp.Status, body)
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, err
	}
	return jobj, nil
}

// Prices implements coinfolio.Exchange.
func (c *Client) Prices(ctx context.Context) (map[string]coinfolio.Money, error) {
	var content []struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := c.jwget(ctx, "/api/v3/ticker/price", nil, false, &content); err != nil {
		return nil, err
	}

	prices := make(map[string]coinfolio.Money, len(content))
	for _, p := range content {
		d, err := decimal.NewFromString(p.Price)
		if err != nil {
			continue
		}
		prices[p.Symbol] = coinfolio.M(d, "")
	}
	return prices, nil
}

// Trades implements coinfolio.Exchange.
func (c *Client) Trades(ctx context.Context, symbol string) ([]coinfolio.RawTrade, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("limit", "1000")

	var content []coinfolio.RawTrade
	if err := c.jwget(ctx, "/api/v3/myTrades", params, true, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func (c *Client) funding(ctx context.Context, path string) ([]coinfolio.FundingRecord, error) {
	var content []struct {
		Coin   string `json:"coin"`
		Amount string `json:"amount"`
	}
	if err := c.jwget(ctx, path, nil, true, &content); err != nil {
		return nil, err
	}

	records := make([]coinfolio.FundingRecord, 0, len(content))
	for _, r := range content {
		d, err := decimal.NewFromString(r.Amount)
		if err != nil {
			continue
		}
		// MEXC funding is crypto transfers only, fiat never reaches it
		records = append(records, coinfolio.FundingRecord{
			Amount: coinfolio.M(d, ""),
			Kind:   coinfolio.Crypto,
		})
	}
	return records, nil
}

// Deposits implements coinfolio.FundingSource.
func (c *Client) Deposits(ctx context.Context) ([]coinfolio.FundingRecord, error) {
	return c.funding(ctx, "/api/v3/capital/deposit/hisrec")
}

// Withdrawals implements coinfolio.FundingSource.
func (c *Client) Withdrawals(ctx context.Context) ([]coinfolio.FundingRecord, error) {
	return c.funding(ctx, "/api/v3/capital/withdraw/history")
}
