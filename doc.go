// Package ledger provides the domain engine of a personal multi-account
// ledger. It is local-first: the whole state is a small document loaded in
// memory, mutated by discrete user actions, and persisted after each one.
//
// The core functionalities include:
//   - Accounts: named, chronologically sorted transaction histories with a
//     running balance, in a fiat currency or, for crypto, metal, stock, fund
//     and real estate accounts, paired with a secondary ledger of units.
//   - Submission: raw user input (amounts, YYYY-MM-DD dates, observed
//     balances) is parsed exactly (no floating point) into immutable
//     transactions, or rejected with a typed error.
//   - Aggregation: balances, sums over half-open date windows (current and
//     last month or year), per currency totals and a linear projection.
//   - Materialization: recurring templates become dated transactions, once
//     per calendar month, driven by a persisted watermark.
//   - Valuation: units held are valued with a price supplied by a PriceLookup
//     collaborator, and recorded as a zero amount transaction.
//   - Persistence: the JSON snapshot codec and the Store interface.
//
// No function in this package reads the clock: "now" is always a
// parameter, so every computation is reproducible.
//
// This package serves as the foundational logic for the `ldg` command-line
// tool.
package ledger
