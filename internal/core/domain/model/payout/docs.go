// Package payout provides the settlement aggregate for paying sellers and
// riders. A payout record batches a payee's completed orders or deliveries
// over a settlement period, withholds a fixed 5% tax, and becomes immutable
// ledger data once marked paid.
package payout
