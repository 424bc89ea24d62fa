// Package kernel holds the value objects shared by every aggregate of the
// restaurant domain.
//
//   - UUID identifies orders, categories and products.
//   - Date is a zone-free calendar day used for daily aggregates and retention.
//
// Both are immutable and safe for concurrent use. Their zero values are invalid
// and are rejected by Validate.
package kernel
