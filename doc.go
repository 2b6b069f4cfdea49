// Package habitbank implements a virtual-economy ledger that turns habit
// completions into family "wealth": four themed accounts accrue points with
// compound daily interest, balances map to reward tiers, and a portfolio
// analyzer derives per-habit ROI, risk and diversification metrics.
//
// The package is a library, not a service. It reaches the outside world
// through three narrow ports: a Store (document persistence keyed by family
// id), a Sink (best-effort event delivery towards calendar/notification
// collaborators), and an advisor.Advisor (text generation for statement
// insights, always backed by a static fallback).
package habitbank
