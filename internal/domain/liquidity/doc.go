// Package liquidity implements early token redemption: the holding-period
// fee schedule, payout quotes, and the redemption request lifecycle.
//
// Fee tiers are keyed by how many whole months an investor has held their
// tokens. Tiers are evaluated in ascending min_months order and the first
// tier whose [min_months, max_months) range contains the holding period is
// applied. When no tier matches, the last tier (normally the open-ended one)
// is applied.
package liquidity
