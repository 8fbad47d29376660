package coinfolio

import "context"

// FundingKind distinguishes fiat funding from crypto transfers.
type FundingKind int

const (
	Fiat FundingKind = iota
	Crypto
)

func (k FundingKind) String() string {
	if k == Fiat {
		return "fiat"
	}
	return "crypto"
}

// FundingRecord is one deposit into or withdrawal out of an exchange
// account, valued in the quote currency.
type FundingRecord struct {
	Amount Money
	Kind   FundingKind
}

// FundingSource lists the money that moved in and out of an account.
type FundingSource interface {
	Name() string
	Deposits(ctx context.Context) ([]FundingRecord, error)
	Withdrawals(ctx context.Context) ([]FundingRecord, error)
}

// FundingFlow sums one direction of funding, split by kind.
type FundingFlow struct {
	Fiat   Money `json:"fiat"`
	Crypto Money `json:"crypto"`
	Total  Money `json:"total"`
	Count  int   `json:"count"`
}

// FundingReport states how much capital ever entered and left the
// accounts. NetInvestment is deposits minus withdrawals: the external
// money still at work.
type FundingReport struct {
	Deposits      FundingFlow `json:"deposits"`
	Withdrawals   FundingFlow `json:"withdrawals"`
	NetInvestment Money       `json:"netInvestment"`
}

// ComputeFunding folds deposit and withdrawal records into a funding
// report. Like the other computations it is total: nil inputs yield a
// zero report.
func ComputeFunding(quote string, deposits, withdrawals []FundingRecord) FundingReport {
	report := FundingReport{
		Deposits:    newFundingFlow(quote, deposits),
		Withdrawals: newFundingFlow(quote, withdrawals),
	}
	report.NetInvestment = report.Deposits.Total.Sub(report.Withdrawals.Total)
	return report
}

func newFundingFlow(quote string, records []FundingRecord) FundingFlow {
	flow := FundingFlow{
		Fiat:   M(0, quote),
		Crypto: M(0, quote),
		Total:  M(0, quote),
	}
	for _, r := range records {
		switch r.Kind {
		case Fiat:
			flow.Fiat = flow.Fiat.Add(r.Amount)
		case Crypto:
			flow.Crypto = flow.Crypto.Add(r.Amount)
		}
		flow.Total = flow.Total.Add(r.Amount)
		flow.Count++
	}
	return flow
}
