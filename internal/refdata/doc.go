// Package refdata provides the static reference data consulted by the
// feature engine: a set of known-benign registrable domains and a set of
// top-level domains that are over-represented in phishing campaigns.
//
// The sets are values, not globals. Default returns the built-in lists
// shared read-only by every caller, and New builds alternate sets so tests
// and configuration overrides can inject their own data without touching
// process-wide state.
//
// Sources:
//   - Benign domains: Tranco top 100 (https://tranco-list.eu/)
//   - Suspicious TLDs: Netcraft cybercrime TLD ranking
//     (https://trends.netcraft.com/cybercrime/tlds)
package refdata
