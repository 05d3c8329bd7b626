// Package courier provides domain entities and business logic for courier
// management in the takeout system. It implements the Courier aggregate root
// with dispatch eligibility, workload tracking and position reporting.
//
// The package includes:
//   - Courier: The aggregate root managing identity, status, workload and
//     last reported position
//   - Status: Dispatch eligibility (ACTIVE or DISABLED)
//
// Key business rules:
//   - Only ACTIVE couriers participate in assignment
//   - Workload counts concurrently carried orders and never goes negative
//   - A courier without a reported position is skipped by distance-based
//     dispatch scoring
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
