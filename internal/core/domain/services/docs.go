// Package services holds the domain services the order lifecycle drives inside
// its transaction:
//   - AuditTrail appends audit rows
//   - ContractResolver finds or lazily creates a tenant's billing contract
//   - LedgerEngine records commission for an order's current total
//   - SalesAggregator rolls confirmed sales into the daily stats
//
// None of them opens a transaction. Each receives the caller's unit of work and
// returns every failure so the caller can roll back.
package services
