// Package services contains stateless domain services operating across
// aggregates: courier selection for order dispatch and discount resolution
// from restaurant promotions.
package services
