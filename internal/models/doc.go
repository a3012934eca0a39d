// Package models defines the records exchanged between the pricing service,
// its storage layer, and its clients.
//
// # Models
//
//   - RateTable: a named, versioned set of base tax rates per category
//   - PriceBillRequest / PriceBillResponse: the pricing RPC payloads
//   - PricedLine: one rendered receipt line with its derived amounts
//
// Monetary amounts leave the service as fixed two-decimal strings so that
// clients never see binary floating point rounding.
//
// # Design Principles
//
// 1. **Untyped input, typed output**: request items are decoded loosely and
// validated by the calculator, which owns the error taxonomy
// 2. **Only configuration is persisted**: bills are priced and discarded
package models
