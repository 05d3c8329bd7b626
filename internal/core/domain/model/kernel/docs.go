// Package kernel provides shared value objects for the takeout domain model.
//
// It contains the building blocks used by every aggregate:
//   - UUID: validated entity identifier wrapping github.com/google/uuid
//   - GeoPoint: validated latitude/longitude pair with haversine distance
//   - Money / Rate: integer-cent amounts and basis-point commission rates
//   - ConstructorGuard: guards against zero-value construction of domain objects
//
// All types are immutable value objects; the zero value of guarded types is
// invalid and must be created through the package constructors.
package kernel
