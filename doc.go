// Package coinfolio computes investment performance metrics for crypto
// holdings spread over several exchanges.
//
// The heart of the package is a pure cost-basis accounting engine:
// ComputeAssetMetrics turns an unordered trade history plus the current
// market price and the live balance into a complete per-asset metrics
// report (FIFO realized profit, average cost, unrealized profit, ROI,
// price volatility), and ComputePortfolioMetrics folds those reports into
// portfolio-level totals and a value-weighted distribution.
//
// Both functions are total: they accept any input, substitute zero for
// anything unparsable, and never produce a NaN. Exchange connectivity
// lives in the binance and mexc subpackages behind the Exchange interface;
// the engine itself performs no I/O and keeps no state between calls.
package coinfolio
