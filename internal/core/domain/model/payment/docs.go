// Package payment provides domain entities for the money side of the takeout
// system: the append-only ledger of charges and refunds, and restaurant
// full-reduction promotions used to compute order discounts.
package payment
