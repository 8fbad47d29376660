// Package binance implements the coinfolio.Exchange and
// coinfolio.FundingSource interfaces on top of the Binance spot REST API.
package binance

import (
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
	"time"

	"github.com/etnz/coinfolio"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.binance.com"

// Client queries the Binance spot REST API for one account.
//
// Signed endpoints follow the Binance scheme: the query string carries a
// millisecond timestamp and an HMAC-SHA256 signature of itself, the API
// key travels in the X-MBX-APIKEY header.
type Client struct {
	apiKey    string
	apiSecret string

	// BaseURL can be pointed at a test server.
	BaseURL string
	HTTP    *http.Client

	now func() time.Time
}

// New returns a client for the given account credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		BaseURL:   defaultBaseURL,
		HTTP:      http.DefaultClient,
		now:       time.Now,
	}
}

// Name implements coinfolio.Exchange.
func (c *Client) Name() string { return "binance" }

// jwget performs a GET request against path and unmarshals the JSON
// response body into data. Signed requests get the timestamp and
// signature parameters appended.
func (c *Client) jwget(ctx context.Context, path string, params url.Values, signed bool, data any) error {
	if params == nil {
		params = url.Values{}
	}
	query := params.Encode()
	if signed {
		if query != "" {
			query += "&"
		}
		query += "timestamp=" + strconv.FormatInt(c.now().UnixMilli(), 10)
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
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
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

// sign returns the hex HMAC-SHA256 of the raw query string, exactly as
// it will be sent.
func (c *Client) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// Balances implements coinfolio.Exchange. Zero balances are dropped.
func (c *Client) Balances(ctx context.Context) ([]coinfolio.Balance, error) {
	// that's the payload
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
	return balances, nil
}

// Prices implements coinfolio.Exchange. The returned prices carry no
// currency, the pair symbol is the only key the collectors use.
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

// Trades implements coinfolio.Exchange, returning the account's trade
// history for one pair in wire form.
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

// fiat names the coins Binance settles as fiat money in its capital
// endpoints.
var fiat = map[string]bool{"USD": true, "EUR": true, "GBP": true, "BRL": true}

func kindOf(coin string) coinfolio.FundingKind {
	if fiat[coin] {
		return coinfolio.Fiat
	}
	return coinfolio.Crypto
}

// capitalRecord is the common wire shape of the deposit and withdrawal
// history endpoints.
type capitalRecord struct {
	Coin   string `json:"coin"`
	Amount string `json:"amount"`
}

func (c *Client) funding(ctx context.Context, path string) ([]coinfolio.FundingRecord, error) {
	var content []capitalRecord
	if err := c.jwget(ctx, path, nil, true, &content); err != nil {
		return nil, err
	}

	records := make([]coinfolio.FundingRecord, 0, len(content))
	for _, r := range content {
		d, err := decimal.NewFromString(r.Amount)
		if err != nil {
			continue
		}
		records = append(records, coinfolio.FundingRecord{
			Amount: coinfolio.M(d, ""),
			Kind:   kindOf(r.Coin),
		})
	}
	return records, nil
}

// Deposits implements coinfolio.FundingSource.
func (c *Client) Deposits(ctx context.Context) ([]coinfolio.FundingRecord, error) {
	return c.funding(ctx, "/sapi/v1/capital/deposit/hisrec")
}

// Withdrawals implements coinfolio.FundingSource.
func (c *Client) Withdrawals(ctx context.Context) ([]coinfolio.FundingRecord, error) {
	return c.funding(ctx, "/sapi/v1/capital/withdraw/history")
}
