package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const (
	testKey    = "test-key"
	testSecret = "test-secret"
)

// newTestClient wires a client to a test server answering every path
// with the given body, after checking the signed-request invariants.
func newTestClient(t *testing.T, bodies map[string]string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if sig := r.URL.Query().Get("signature"); sig != "" {
			if r.Header.Get("X-MBX-APIKEY") != testKey {
				t.Errorf("signed request without the api key header")
			}
			raw, _, _ := strings.Cut(r.URL.RawQuery, "&signature=")
			mac := hmac.New(sha256.New, []byte(testSecret))
			mac.Write([]byte(raw))
			if want := hex.EncodeToString(mac.Sum(nil)); sig != want {
				t.Errorf("signature = %s, want %s over %q", sig, want, raw)
			}
			if r.URL.Query().Get("timestamp") == "" {
				t.Errorf("signed request without a timestamp")
			}
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c := New(testKey, testSecret)
	c.BaseURL = server.URL
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestClient_Balances(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/api/v3/account": `{"balances":[
			{"asset":"BTC","free":"0.05","locked":"0"},
			{"asset":"ETH","free":"0","locked":"1.5"},
			{"asset":"DUST","free":"0","locked":"0"}]}`,
	})

	balances, err := c.Balances(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2: zero balances are dropped", len(balances))
	}
	if balances[0].Asset != "BTC" || balances[0].Free.String() != "0.05" {
		t.Errorf("balances[0] = %+v", balances[0])
	}
	if balances[1].Asset != "ETH" || balances[1].Total().String() != "1.5" {
		t.Errorf("balances[1] = %+v", balances[1])
	}
}

func TestClient_Prices(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/api/v3/ticker/price": `[
			{"symbol":"BTCUSDT","price":"46000.10"},
			{"symbol":"BROKEN","price":"n/a"},
			{"symbol":"ETHUSDT","price":"3000"}]`,
	})

	prices, err := c.Prices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d prices, want 2: unparsable quotes are dropped", len(prices))
	}
	if got := prices["BTCUSDT"]; got.AsFloat() != 46000.10 {
		t.Errorf("BTCUSDT = %v", got)
	}
	if got := prices["BTCUSDT"]; got.Currency() != "" {
		t.Errorf("prices must be currency-less, got %q", got.Currency())
	}
}

func TestClient_Trades(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/api/v3/myTrades": `[
			{"symbol":"BTCUSDT","qty":"0.1","price":"40000","commission":"0.5","time":1000,"isBuyer":true}]`,
	})

	raw, err := c.Trades(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 1 {
		t.Fatalf("got %d trades, want 1", len(raw))
	}
	if raw[0].Qty != "0.1" || raw[0].Price != "40000" || !raw[0].IsBuyer {
		t.Errorf("raw[0] = %+v", raw[0])
	}
}

func TestClient_Deposits_ClassifiesKind(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/sapi/v1/capital/deposit/hisrec": `[
			{"coin":"EUR","amount":"1000"},
			{"coin":"BTC","amount":"0.01"}]`,
	})

	deposits, err := c.Deposits(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(deposits) != 2 {
		t.Fatalf("got %d deposits, want 2", len(deposits))
	}
	if deposits[0].Kind.String() != "fiat" {
		t.Errorf("EUR deposit classified as %s, want fiat", deposits[0].Kind)
	}
	if deposits[1].Kind.String() != "crypto" {
		t.Errorf("BTC deposit classified as %s, want crypto", deposits[1].Kind)
	}
}

func TestClient_ErrorStatusSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-2014,"msg":"API-key format invalid."}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(testKey, testSecret)
	c.BaseURL = server.URL

	if _, err := c.Balances(context.Background()); err == nil {
		t.Fatal("expected an error on a non-200 answer")
	}
}
