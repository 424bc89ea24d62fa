// Package order models a table's order and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root, always scoped to one tenant
//   - Status: pending, ready, paid, finalizado and cancelled, with the allowed moves
//   - Item: one order line (name, category, quantity, unit price)
//   - TableNumber: a table number coerced from either a JSON number or a string
//
// Key business rules:
//   - New orders start pending and unmodified
//   - Amending an active order sends it back to pending and flags it modified
//   - Cancelling stamps cancelledAt and is irreversible
//   - Floor status writes are unconditional except out of cancelled
//   - An order is counted into analytics at most once, only as a sale
package order
