// Package order provides the folio aggregate: a tenant-scoped purchase order
// that moves through a directed, acyclic lifecycle.
//
// The package includes:
//   - Status: the authoritative lifecycle state and its allowed edges
//   - LegacyStatus: a shadow field mirrored for downstream consumers
//   - Order: the aggregate root with draft creation, transitions and total edits
//
// Key business rules:
//   - Orders start in DRAFT and only move along the edges of the transition table
//   - DELIVERED and CANCELLED are terminal
//   - The tenant never changes after creation
//   - The total may change at any status except CANCELLED; billing reconciles it later
package order
