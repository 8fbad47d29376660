package coinfolio

import (
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether a trade added to or removed from the position.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// Trade is one execution record in canonical form. It is immutable once
// built: the engine only ever reads it.
type Trade struct {
	Quantity Quantity
	Price    Money
	Fee      Money
	Side     Side
	Time     time.Time
}

// RawTrade is the wire form of a trade as returned by the exchanges'
// myTrades endpoints. Numeric fields arrive as strings.
type RawTrade struct {
	Symbol     string `json:"symbol"`
	Qty        string `json:"qty"`
	Price      string `json:"price"`
	Commission string `json:"commission"`
	Time       int64  `json:"time"`
	IsBuyer    bool   `json:"isBuyer"`
}

// NormalizeTrades coerces raw exchange records into canonical trades
// expressed in the given quote currency, sorted ascending by time.
//
// An unparsable numeric field is reported and contributes zero to that
// trade, it never aborts the whole computation. A nil input is an empty
// history.
func NormalizeTrades(raw []RawTrade, quote string) []Trade {
	trades := make([]Trade, 0, len(raw))
	for _, r := range raw {
		side := Sell
		if r.IsBuyer {
			side = Buy
		}
		trades = append(trades, Trade{
			Quantity: Quantity{value: lenientDecimal(r.Symbol, "qty", r.Qty)},
			Price:    Money{value: lenientDecimal(r.Symbol, "price", r.Price), cur: quote},
			Fee:      Money{value: lenientDecimal(r.Symbol, "commission", r.Commission), cur: quote},
			Side:     side,
			Time:     time.UnixMilli(r.Time).UTC(),
		})
	}
	return sortTrades(trades)
}

// lenientDecimal parses an exchange numeric string, falling back to zero.
// An empty commission is common and not worth a warning.
func lenientDecimal(symbol, field, s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Printf("warning: unparsable %s in %s trade record %q, using 0", field, symbol, s)
		return decimal.Zero
	}
	return d
}

// sortTrades returns a copy of trades sorted ascending by time. The sort
// is stable: trades with identical timestamps keep their relative order.
func sortTrades(trades []Trade) []Trade {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}
