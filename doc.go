// Package perf computes portfolio performance from a ledger of buy and sell
// stock transactions.
//
// The core functionalities include:
//   - Transaction Ledger: validating raw transaction records and keeping them
//     in a deterministic chronological order (same-day ties keep input order).
//   - FIFO Lot Matching: matching every sell against the oldest still-open
//     purchase lots, emitting realized gains and the surviving open lots.
//     Selling more shares than held is rejected, never treated as a short.
//   - Valuation: pricing open positions against an injected PriceProvider,
//     yielding market value, unrealized profit/loss and allocation
//     percentages. A missing quote degrades a single position, not the run.
//   - Cash Flows and XIRR: building the signed cash-flow timeline (buys
//     negative, sells positive, terminal valuation) and numerically solving
//     for the annualized internal rate of return.
//
// All computation is synchronous and pure with respect to its inputs: each
// run rebuilds its own lot queues and flow sequences, so independent runs may
// proceed in parallel as long as each owns its Ledger snapshot.
//
// Arithmetic stays in exact decimals end to end; currency values round to
// the currency fraction and share counts to 4 digits only at presentation.
//
// A note on XIRR: when cash-flow signs alternate many times the net present
// value equation may admit several roots. The solver deterministically
// returns the first root it converges to; uniqueness is not guaranteed.
//
// This package is the foundational logic for the `qpf` command-line tool.
package perf
