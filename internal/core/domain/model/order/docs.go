// Package order provides domain entities and business logic for order
// management in the takeout system. It implements the Order aggregate root
// with lifecycle management over two independent state axes.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, money amounts,
//     courier assignment and lifecycle
//   - Status: The fulfillment stage machine (Created -> Paid -> Delivering ->
//     Completed, with Canceled reachable before delivery starts)
//   - PayStatus: The money state machine (Unpaid -> Paid -> Refunded)
//   - Destination: The delivery address with optional coordinates
//
// Key business rules:
//   - Orders must have valid order, customer and restaurant identifiers
//   - The charged amount is the total minus the discount, never negative
//   - Commission exists only after settlement and is zeroed on refund
//   - A courier may only hold a settled order; completion releases the courier
//   - Completed and Canceled orders never change again
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
